package services

import (
	"testing"

	"freight-backend/internal/models"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExpenseService() *ExpenseService {
	return NewExpenseService(store.NewMemStore(), nil)
}

func TestCreateExpenseDefaultsDate(t *testing.T) {
	svc := newTestExpenseService()

	e, err := svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{
		Description: "fuel for truck",
		Amount:      75,
		Category:    "fuel",
	})
	require.NoError(t, err)
	assert.Equal(t, timeutil.Today(), e.Date)
	assert.Equal(t, models.ExpenseTypeExpense, e.Type)
}

func TestCreateExpenseValidation(t *testing.T) {
	svc := newTestExpenseService()

	_, err := svc.Create("refund", &models.CreateExpenseRequest{Description: "x", Amount: 1, Category: "other"})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{Amount: 1, Category: "other"})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{Description: "x", Amount: 0, Category: "other"})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{Description: "x", Amount: 1})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{Description: "x", Amount: 1, Category: "other", Date: "bad"})
	require.ErrorAs(t, err, &validationErr)
}

func TestListExpensesByTypeAndRange(t *testing.T) {
	svc := newTestExpenseService()

	_, err := svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{
		Description: "fuel", Amount: 75, Category: "fuel", Date: "2026-03-05",
	})
	require.NoError(t, err)
	_, err = svc.Create(models.ExpenseTypePurchase, &models.CreateExpenseRequest{
		Description: "pallets", Amount: 120, Category: "packaging", Date: "2026-03-06",
	})
	require.NoError(t, err)

	all, err := svc.List(models.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	purchases, err := svc.List(models.ExpenseFilter{Type: models.ExpenseTypePurchase})
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "pallets", purchases[0].Description)

	march5, err := svc.List(models.ExpenseFilter{StartDate: "2026-03-05", EndDate: "2026-03-05"})
	require.NoError(t, err)
	require.Len(t, march5, 1)
	assert.Equal(t, "fuel", march5[0].Description)
}

func TestDeleteExpenseIsPermanent(t *testing.T) {
	svc := newTestExpenseService()

	e, err := svc.Create(models.ExpenseTypeExpense, &models.CreateExpenseRequest{
		Description: "fuel", Amount: 75, Category: "fuel",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(e.ID))

	all, err := svc.List(models.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	var notFound *models.NotFoundError
	require.ErrorAs(t, svc.Delete(e.ID), &notFound)
}
