package service

import (
	"context"

	"github.com/splittab/splittab/internal/calculator"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// DefaultTopExpenses is how many expenses a top-expenses query returns
// when the caller does not say.
const DefaultTopExpenses = 5

// ReportService answers the read-only queries. Every call recomputes from
// the full expense set; nothing is cached between calls, so reads may run
// with arbitrary concurrency against a consistent store snapshot.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a ReportService backed by the given store.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// ComputeBalances returns each person's net position: positive means they
// are owed money, negative means they owe.
func (s *ReportService) ComputeBalances(ctx context.Context) (map[string]float64, error) {
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.AggregateBalances(expenses), nil
}

// ListPeople returns every person referenced by any expense, payer or
// participant.
func (s *ReportService) ListPeople(ctx context.Context) ([]string, error) {
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.People(expenses), nil
}

// CategorySummary totals spending per category.
func (s *ReportService) CategorySummary(ctx context.Context) (map[models.Category]calculator.CategorySummary, error) {
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.SummarizeByCategory(expenses), nil
}

// MonthlySummary totals spending per calendar month with a category
// breakdown inside each month.
func (s *ReportService) MonthlySummary(ctx context.Context) (map[string]calculator.MonthSummary, error) {
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.SummarizeByMonth(expenses), nil
}

// UserSpendingTotals returns the total amount each person has fronted.
func (s *ReportService) UserSpendingTotals(ctx context.Context) (map[string]float64, error) {
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.SpendingByPayer(expenses), nil
}

// TopExpenses returns up to n expenses by amount descending. n <= 0 uses
// DefaultTopExpenses.
func (s *ReportService) TopExpenses(ctx context.Context, n int) ([]*models.Expense, error) {
	if n <= 0 {
		n = DefaultTopExpenses
	}
	expenses, err := s.listExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.TopExpenses(expenses, n), nil
}

func (s *ReportService) listExpenses(ctx context.Context) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, models.NewStoreError("list expenses", err)
	}
	return expenses, nil
}
