package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"freight-backend/internal/cache"
	"freight-backend/internal/models"
	"freight-backend/internal/notify"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// The aggregation functions below are pure over already-loaded collections:
// no I/O of their own. Both the budget calculator and the expenses summary
// screens compose the same functions, so the two can never disagree.

// ShipmentRevenue sums shipment amounts over the inclusive received-date
// range. Empty bounds are open.
func ShipmentRevenue(shipments []models.Shipment, start, end string) float64 {
	var total float64
	for _, sh := range shipments {
		if timeutil.InDateRange(sh.ReceivedDate, start, end) {
			total += sh.Amount
		}
	}
	return total
}

// TripRevenue sums tobacco and other revenue over the trip-date range.
// Embedded shipment amounts are deliberately excluded: those are counted by
// ShipmentRevenue, and counting both would double the revenue when a caller
// combines the two.
func TripRevenue(trips []models.Trip, start, end string) float64 {
	var total float64
	for _, t := range trips {
		if timeutil.InDateRange(t.Date, start, end) {
			total += t.TobaccoRevenue + t.OtherRevenue
		}
	}
	return total
}

// TripCost sums each trip's delivery costs plus its additional costs over
// the trip-date range.
func TripCost(trips []models.Trip, start, end string) float64 {
	var total float64
	for _, t := range trips {
		if !timeutil.InDateRange(t.Date, start, end) {
			continue
		}
		for _, line := range t.Shipments {
			total += line.DeliveryCost
		}
		total += t.AdditionalCosts.Sum()
	}
	return total
}

// ExpenseTotal sums amounts of the given type over the date range.
func ExpenseTotal(expenses []models.Expense, expenseType models.ExpenseType, start, end string) float64 {
	var total float64
	for _, e := range expenses {
		if e.Type != expenseType {
			continue
		}
		if timeutil.InDateRange(e.Date, start, end) {
			total += e.Amount
		}
	}
	return total
}

// BudgetReport is the composed report used by the budget calculator and the
// expenses summary screens.
type BudgetReport struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	Purchases float64 `json:"purchases"`
	Total     float64 `json:"total"`
	Budget    float64 `json:"budget"`
}

// ComposeBudget builds the report from already-loaded collections.
// revenue = shipment revenue + trip revenue; total = expenses + purchases +
// trip cost; budget = revenue - total.
func ComposeBudget(shipments []models.Shipment, trips []models.Trip, expenses []models.Expense, start, end string) BudgetReport {
	revenue := ShipmentRevenue(shipments, start, end) + TripRevenue(trips, start, end)
	expenseSum := ExpenseTotal(expenses, models.ExpenseTypeExpense, start, end)
	purchaseSum := ExpenseTotal(expenses, models.ExpenseTypePurchase, start, end)
	total := expenseSum + purchaseSum + TripCost(trips, start, end)
	return BudgetReport{
		StartDate: start,
		EndDate:   end,
		Revenue:   revenue,
		Expenses:  expenseSum,
		Purchases: purchaseSum,
		Total:     total,
		Budget:    revenue - total,
	}
}

// ReportService loads the collections through their ledgers and composes
// the budget report, with a short-lived Redis cache invalidated on any
// ledger change.
type ReportService struct {
	Shipments *ShipmentService
	Trips     *TripService
	Expenses  *ExpenseService
}

func NewReportService(shipments *ShipmentService, trips *TripService, expenses *ExpenseService, hub *notify.Hub) *ReportService {
	s := &ReportService{Shipments: shipments, Trips: trips, Expenses: expenses}
	// Any change to a source collection makes every cached report stale
	hub.Subscribe(func(ev notify.Event) {
		switch ev.Collection {
		case store.CollectionShipments, store.CollectionTrips, store.CollectionExpenses:
			cache.InvalidatePattern(context.Background(), cache.ReportKeyPrefix+"*")
		}
	})
	return s
}

// Budget returns the composed budget report for the inclusive date range.
func (s *ReportService) Budget(ctx context.Context, start, end string) (*BudgetReport, error) {
	key := cache.BudgetKey(start, end)
	if data, ok := cache.GetCached(ctx, key); ok {
		var report BudgetReport
		if err := json.Unmarshal(data, &report); err == nil {
			return &report, nil
		}
	}

	shipments, err := s.Shipments.List(models.ShipmentFilter{})
	if err != nil {
		return nil, err
	}
	trips, err := s.Trips.List()
	if err != nil {
		return nil, err
	}
	expenses, err := s.Expenses.List(models.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	report := ComposeBudget(shipments, trips, expenses, start, end)
	if data, err := json.Marshal(&report); err == nil {
		cache.SetCached(ctx, key, data, 5*time.Minute)
	}
	return &report, nil
}

// BudgetCSV exports the budget report as a two-column CSV.
func (s *ReportService) BudgetCSV(ctx context.Context, start, end string) ([]byte, error) {
	report, err := s.Budget(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"Field", "Value"},
		{"Start Date", report.StartDate},
		{"End Date", report.EndDate},
		{"Revenue", fmt.Sprintf("%.2f", report.Revenue)},
		{"Expenses", fmt.Sprintf("%.2f", report.Expenses)},
		{"Purchases", fmt.Sprintf("%.2f", report.Purchases)},
		{"Total Costs", fmt.Sprintf("%.2f", report.Total)},
		{"Budget", fmt.Sprintf("%.2f", report.Budget)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), nil
}

// BudgetPDF exports the budget report as a one-page PDF.
func (s *ReportService) BudgetPDF(ctx context.Context, start, end string) ([]byte, error) {
	report, err := s.Budget(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rangeLabel := "All time"
	if start != "" || end != "" {
		from := start
		if from == "" {
			from = "..."
		}
		to := end
		if to == "" {
			to = "..."
		}
		rangeLabel = fmt.Sprintf("%s to %s", from, to)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(180, 12, "Freight Office - Budget Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, fmt.Sprintf("Period: %s", rangeLabel), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := []struct {
		label string
		value float64
	}{
		{"Revenue (shipments + trips)", report.Revenue},
		{"Expenses", report.Expenses},
		{"Purchases", report.Purchases},
		{"Total Costs (incl. trip costs)", report.Total},
		{"Budget (revenue - costs)", report.Budget},
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.CellFormat(120, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", row.value), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
