package calculator

import (
	"sort"
	"time"

	"github.com/splittab/splittab/internal/models"
)

// CategorySummary totals spending per category.
type CategorySummary struct {
	TotalSpent   float64 `json:"totalSpent"`
	Transactions int     `json:"transactions"`
}

// MonthSummary totals spending for one calendar month.
type MonthSummary struct {
	TotalSpent        float64                     `json:"totalSpent"`
	TransactionCount  int                         `json:"transactionCount"`
	CategoryBreakdown map[models.Category]float64 `json:"categoryBreakdown"`
}

// SummarizeByCategory folds the expense set into per-category totals.
func SummarizeByCategory(expenses []*models.Expense) map[models.Category]CategorySummary {
	summary := make(map[models.Category]CategorySummary)
	for _, expense := range expenses {
		cat := expense.Category
		if cat == "" {
			cat = models.CategoryOther
		}
		entry := summary[cat]
		entry.TotalSpent += expense.Amount
		entry.Transactions++
		summary[cat] = entry
	}
	return summary
}

// SummarizeByMonth folds the expense set into per-month totals keyed by
// "YYYY-MM" (from the expense's creation time, in UTC), with a category
// breakdown inside each month.
func SummarizeByMonth(expenses []*models.Expense) map[string]MonthSummary {
	summary := make(map[string]MonthSummary)
	for _, expense := range expenses {
		month := time.Unix(expense.CreatedAt, 0).UTC().Format("2006-01")
		cat := expense.Category
		if cat == "" {
			cat = models.CategoryOther
		}

		entry, ok := summary[month]
		if !ok {
			entry = MonthSummary{CategoryBreakdown: make(map[models.Category]float64)}
		}
		entry.TotalSpent += expense.Amount
		entry.TransactionCount++
		entry.CategoryBreakdown[cat] += expense.Amount
		summary[month] = entry
	}
	return summary
}

// SpendingByPayer totals the amounts each person has fronted across all
// expenses, regardless of how they were split.
func SpendingByPayer(expenses []*models.Expense) map[string]float64 {
	perUser := make(map[string]float64)
	for _, expense := range expenses {
		perUser[expense.PaidBy] += expense.Amount
	}
	return perUser
}

// TopExpenses returns up to n expenses ordered by amount descending. The
// input slice is not modified. n <= 0 yields an empty result.
func TopExpenses(expenses []*models.Expense, n int) []*models.Expense {
	if n <= 0 {
		return nil
	}
	top := make([]*models.Expense, len(expenses))
	copy(top, expenses)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount > top[j].Amount
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
