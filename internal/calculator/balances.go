package calculator

import "github.com/splittab/splittab/internal/models"

// AggregateBalances folds the full expense set into a net balance per
// person: positive means the person is owed money, negative means they
// owe.
//
// For each expense, every participant's share is subtracted first and the
// full amount is then credited to the payer. The two steps are kept
// separate on purpose: a payer who is not among the participants is valid
// input and must receive full credit with no share subtracted. When the
// payer does participate, the net effect is amount minus their own share,
// which is exactly what the others owe them.
func AggregateBalances(expenses []*models.Expense) map[string]float64 {
	balances := make(map[string]float64)
	for _, expense := range expenses {
		for _, p := range expense.Participants {
			balances[p] -= expense.Allocation[p]
		}
		balances[expense.PaidBy] += expense.Amount
	}
	return balances
}

// People returns every distinct person referenced by the expense set,
// payers and participants alike, in first-seen order.
func People(expenses []*models.Expense) []string {
	seen := make(map[string]bool)
	var people []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			people = append(people, name)
		}
	}
	for _, expense := range expenses {
		add(expense.PaidBy)
		for _, p := range expense.Participants {
			add(p)
		}
	}
	return people
}
