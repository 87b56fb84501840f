package calculator

import (
	"testing"

	"github.com/splittab/splittab/internal/models"
)

func TestAggregateBalances_SingleExpense(t *testing.T) {
	expenses := []*models.Expense{{
		Amount:       6000,
		PaidBy:       "Alice",
		Participants: []string{"Alice", "Bob", "Charlie"},
		Allocation:   map[string]float64{"Alice": 600, "Bob": 3000, "Charlie": 2400},
	}}

	balances := AggregateBalances(expenses)

	// Payer nets amount minus their own share; others owe their share.
	if cents(balances["Alice"]) != 540000 {
		t.Errorf("Alice: got %v, want 5400.00", balances["Alice"])
	}
	if cents(balances["Bob"]) != -300000 {
		t.Errorf("Bob: got %v, want -3000.00", balances["Bob"])
	}
	if cents(balances["Charlie"]) != -240000 {
		t.Errorf("Charlie: got %v, want -2400.00", balances["Charlie"])
	}
}

func TestAggregateBalances_PayerNotParticipant(t *testing.T) {
	expenses := []*models.Expense{{
		Amount:       100,
		PaidBy:       "Dana",
		Participants: []string{"Alice", "Bob"},
		Allocation:   map[string]float64{"Alice": 50, "Bob": 50},
	}}

	balances := AggregateBalances(expenses)

	// Dana fronted everything and owes no share: full credit.
	if cents(balances["Dana"]) != 10000 {
		t.Errorf("Dana: got %v, want 100.00", balances["Dana"])
	}
	if cents(balances["Alice"]) != -5000 || cents(balances["Bob"]) != -5000 {
		t.Errorf("participants: got %v, want -50.00 each", balances)
	}
}

func TestAggregateBalances_MultipleExpensesNetOut(t *testing.T) {
	expenses := []*models.Expense{
		{
			Amount:       100,
			PaidBy:       "Alice",
			Participants: []string{"Alice", "Bob"},
			Allocation:   map[string]float64{"Alice": 50, "Bob": 50},
		},
		{
			Amount:       100,
			PaidBy:       "Bob",
			Participants: []string{"Alice", "Bob"},
			Allocation:   map[string]float64{"Alice": 50, "Bob": 50},
		},
	}

	balances := AggregateBalances(expenses)

	if cents(balances["Alice"]) != 0 || cents(balances["Bob"]) != 0 {
		t.Errorf("symmetric expenses must net to zero, got %v", balances)
	}
}

func TestAggregateBalances_SumsToZero(t *testing.T) {
	// Whatever the shape of the expense set, credits and debts must
	// cancel out across all people.
	expenses := []*models.Expense{
		{
			Amount:       10.00,
			PaidBy:       "Alice",
			Participants: []string{"Alice", "Bob", "Charlie"},
			Allocation:   map[string]float64{"Alice": 3.33, "Bob": 3.33, "Charlie": 3.34},
		},
		{
			Amount:       99.99,
			PaidBy:       "Charlie",
			Participants: []string{"Bob", "Charlie"},
			Allocation:   map[string]float64{"Bob": 49.99, "Charlie": 50.00},
		},
	}

	balances := AggregateBalances(expenses)

	total := 0.0
	for _, v := range balances {
		total += v
	}
	if cents(total) != 0 {
		t.Errorf("balances sum to %v, want 0", total)
	}
}

func TestPeople(t *testing.T) {
	expenses := []*models.Expense{
		{PaidBy: "Dana", Participants: []string{"Alice", "Bob"}},
		{PaidBy: "Alice", Participants: []string{"Bob", "Charlie"}},
	}

	people := People(expenses)

	want := []string{"Dana", "Alice", "Bob", "Charlie"}
	if len(people) != len(want) {
		t.Fatalf("expected %d people, got %v", len(want), people)
	}
	for i, name := range want {
		if people[i] != name {
			t.Errorf("position %d: got %q, want %q (first-seen order)", i, people[i], name)
		}
	}
}
