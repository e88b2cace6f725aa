package services

import (
	"strconv"
	"strings"

	"freight-backend/internal/models"
	"freight-backend/internal/notify"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"
)

// ExpenseService owns the expenses collection. Expense records cover both
// expenses and purchases via the type discriminant. There is no update
// operation and no trash: deletion is immediate and permanent.
type ExpenseService struct {
	Store store.Store
	Hub   *notify.Hub
}

func NewExpenseService(s store.Store, hub *notify.Hub) *ExpenseService {
	return &ExpenseService{Store: s, Hub: hub}
}

// Create validates the category-scoped form and prepends the record.
func (s *ExpenseService) Create(expenseType models.ExpenseType, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if !expenseType.Valid() {
		return nil, models.NewValidationError("type", "type must be expense or purchase")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, models.NewValidationError("description", "description is required")
	}
	if req.Amount <= 0 {
		return nil, models.NewValidationError("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, models.NewValidationError("category", "category is required")
	}
	date := req.Date
	if date == "" {
		date = timeutil.Today()
	} else if _, err := timeutil.ParseDate(date); err != nil {
		return nil, models.NewValidationError("date", "date must be YYYY-MM-DD")
	}

	expense := models.Expense{
		ID:          strconv.FormatInt(nextStamp(), 10),
		Type:        expenseType,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Category:    req.Category,
		Notes:       req.Notes,
		CreatedAt:   timeutil.Now(),
	}

	expenses, err := s.load()
	if err != nil {
		return nil, err
	}
	expenses = append([]models.Expense{expense}, expenses...)
	if err := s.Store.Save(store.CollectionExpenses, expenses); err != nil {
		return nil, err
	}

	s.Hub.Publish(store.CollectionExpenses, timeutil.Now())
	return &expense, nil
}

// Delete removes a record permanently. Missing ids fail with NotFoundError:
// unlike the trash ledgers there is no softer state to fall back to.
func (s *ExpenseService) Delete(id string) error {
	expenses, err := s.load()
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID != id {
			continue
		}
		expenses = append(expenses[:i], expenses[i+1:]...)
		if err := s.Store.Save(store.CollectionExpenses, expenses); err != nil {
			return err
		}
		s.Hub.Publish(store.CollectionExpenses, timeutil.Now())
		return nil
	}
	return models.NewNotFoundError("expense", id)
}

// List filters by type and inclusive date range. Used by the listing views
// and by the financial reports.
func (s *ExpenseService) List(filter models.ExpenseFilter) ([]models.Expense, error) {
	expenses, err := s.load()
	if err != nil {
		return nil, err
	}
	result := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if !timeutil.InDateRange(e.Date, filter.StartDate, filter.EndDate) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (s *ExpenseService) load() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.Store.Load(store.CollectionExpenses, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}
