package handlers

import (
	"encoding/json"
	"net/http"

	"freight-backend/internal/models"
	"freight-backend/internal/services"

	"github.com/gorilla/mux"
)

// ExpenseHandler handles expense and purchase ledger endpoints
type ExpenseHandler struct {
	Expenses *services.ExpenseService
}

func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

// List returns expenses matching the query parameters
// GET /api/expenses?type=&start_date=&end_date=
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ExpenseFilter{
		Type:      models.ExpenseType(q.Get("type")),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	expenses, err := h.Expenses.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

// Create registers a new expense or purchase record
// POST /api/expenses?type=expense|purchase
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	expenseType := models.ExpenseType(r.URL.Query().Get("type"))
	if expenseType == "" {
		expenseType = models.ExpenseTypeExpense
	}

	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	expense, err := h.Expenses.Create(expenseType, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// Delete removes an expense permanently. There is no trash for expenses.
// DELETE /api/expenses/{id}
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Expenses.Delete(mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Categories returns the suggested categories for each record type
// GET /api/expenses/categories
func (h *ExpenseHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{
		"expense":  models.ExpenseCategories,
		"purchase": models.PurchaseCategories,
	})
}
