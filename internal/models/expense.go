package models

import "time"

// ExpenseType discriminates between running expenses and purchases.
type ExpenseType string

const (
	ExpenseTypeExpense  ExpenseType = "expense"
	ExpenseTypePurchase ExpenseType = "purchase"
)

func (t ExpenseType) Valid() bool {
	return t == ExpenseTypeExpense || t == ExpenseTypePurchase
}

// Expense covers both expense and purchase records. Expenses are never
// edited in place and have no trash: deletion is immediate and permanent.
type Expense struct {
	ID          string      `json:"id"`
	Type        ExpenseType `json:"type"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Date        string      `json:"date"` // date-only, YYYY-MM-DD
	Category    string      `json:"category"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Notes       string  `json:"notes"`
}

// ExpenseFilter narrows List results by type and inclusive date range.
type ExpenseFilter struct {
	Type      ExpenseType `json:"type"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
}

// Suggested categories per type, offered by the intake forms. Category stays
// a free string; these are suggestions, not an enum.
var (
	ExpenseCategories  = []string{"fuel", "maintenance", "salaries", "rent", "utilities", "customs", "other"}
	PurchaseCategories = []string{"equipment", "packaging", "vehicles", "office", "other"}
)
