package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
	"github.com/splittab/splittab/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splittab-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func registerUsers(t *testing.T, store storage.Store, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := store.CreateUser(context.Background(), &models.User{Name: name}); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func equalInput(amount float64, participants ...string) CreateExpenseInput {
	return CreateExpenseInput{
		Description:  "test expense",
		Amount:       amount,
		PaidBy:       participants[0],
		Participants: participants,
		SplitType:    models.SplitEqual,
		Category:     "Food",
	}
}

func TestCreateExpense(t *testing.T) {
	store := newTestStore(t)
	registerUsers(t, store, "Alice", "Bob", "Charlie")
	svc := NewExpenseService(store)
	ctx := context.Background()

	t.Run("create allocates and derives settlements", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, equalInput(10.00, "Alice", "Bob", "Charlie"))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("expected generated ID")
		}
		if cents(expense.Allocation["Charlie"]) != 334 {
			t.Errorf("last participant share: got %v, want 3.34", expense.Allocation["Charlie"])
		}
		if !expense.PaidFlags["Alice"] || expense.PaidFlags["Bob"] {
			t.Errorf("paid flags wrong: %v", expense.PaidFlags)
		}
		if expense.EveryonePaid {
			t.Error("EveryonePaid must be false with outstanding shares")
		}

		settlements, err := svc.ListSettlements(ctx)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(settlements) != 2 {
			t.Fatalf("expected 2 settlements, got %d", len(settlements))
		}
		for _, settlement := range settlements {
			if settlement.From == "Alice" {
				t.Error("payer must not have a self-settlement")
			}
			if settlement.To != "Alice" {
				t.Errorf("settlement target: got %q, want Alice", settlement.To)
			}
			if settlement.ExpenseID != expense.ID {
				t.Errorf("settlement owner: got %q, want %q", settlement.ExpenseID, expense.ID)
			}
			if settlement.Category != models.CategoryFood {
				t.Errorf("category snapshot: got %q, want Food", settlement.Category)
			}
		}
	})

	t.Run("unregistered people are reported missing", func(t *testing.T) {
		input := equalInput(30.00, "Alice", "Mallory", "Eve")
		_, err := svc.CreateExpense(ctx, input)
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected *models.NotFoundError, got %T: %v", err, err)
		}
		if len(notFound.Fields) != 2 {
			t.Errorf("expected both Mallory and Eve reported, got %v", notFound.Fields)
		}
	})

	t.Run("validation failure persists nothing", func(t *testing.T) {
		before, _ := svc.ListExpenses(ctx)
		input := equalInput(0, "Alice", "Bob") // amount must be > 0
		if _, err := svc.CreateExpense(ctx, input); err == nil {
			t.Fatal("expected a validation error")
		}
		after, _ := svc.ListExpenses(ctx)
		if len(after) != len(before) {
			t.Error("failed create must not persist an expense")
		}
	})

	t.Run("split type defaults to equal", func(t *testing.T) {
		input := equalInput(20.00, "Alice", "Bob")
		input.SplitType = ""
		expense, err := svc.CreateExpense(ctx, input)
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.SplitType != models.SplitEqual {
			t.Errorf("got split type %q, want equal", expense.SplitType)
		}
	})

	t.Run("unknown category falls back to Other", func(t *testing.T) {
		input := equalInput(20.00, "Alice", "Bob")
		input.Category = "Gambling"
		expense, err := svc.CreateExpense(ctx, input)
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.Category != models.CategoryOther {
			t.Errorf("got category %q, want Other", expense.Category)
		}
	})
}

func settlementsFor(t *testing.T, svc *ExpenseService, expenseID string) []*models.Settlement {
	t.Helper()
	all, err := svc.ListSettlements(context.Background())
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	var owned []*models.Settlement
	for _, settlement := range all {
		if settlement.ExpenseID == expenseID {
			owned = append(owned, settlement)
		}
	}
	return owned
}

func TestUpdateExpense(t *testing.T) {
	store := newTestStore(t)
	registerUsers(t, store, "Alice", "Bob", "Charlie", "Dave")
	svc := NewExpenseService(store)
	ctx := context.Background()

	t.Run("update rederives settlements with no stale rows", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, equalInput(10.00, "Alice", "Bob", "Charlie"))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		amount := 100.00
		updated, err := svc.UpdateExpense(ctx, expense.ID, UpdateExpenseInput{
			Amount:       &amount,
			Participants: []string{"Alice", "Bob", "Dave"},
		})
		if err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		if cents(updated.Amount) != 10000 {
			t.Errorf("amount not updated: %v", updated.Amount)
		}
		if _, ok := updated.Allocation["Charlie"]; ok {
			t.Error("removed participant must not keep a share")
		}

		owned := settlementsFor(t, svc, expense.ID)
		if len(owned) != 2 {
			t.Fatalf("expected exactly one settlement per non-payer, got %d", len(owned))
		}
		froms := map[string]int64{}
		for _, settlement := range owned {
			froms[settlement.From] = cents(settlement.Amount)
		}
		if froms["Bob"] != 3333 || froms["Dave"] != 3334 {
			t.Errorf("settlements must match the new allocation, got %v", froms)
		}
	})

	t.Run("unspecified fields retain prior values", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, equalInput(40.00, "Bob", "Alice"))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		amount := 60.00
		updated, err := svc.UpdateExpense(ctx, expense.ID, UpdateExpenseInput{Amount: &amount})
		if err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		if updated.PaidBy != "Bob" {
			t.Errorf("payer changed unexpectedly: %q", updated.PaidBy)
		}
		if updated.Description != "test expense" {
			t.Errorf("description changed unexpectedly: %q", updated.Description)
		}
		if len(updated.Participants) != 2 {
			t.Errorf("participants changed unexpectedly: %v", updated.Participants)
		}
	})

	t.Run("failed revalidation keeps prior settlements", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, equalInput(10.00, "Alice", "Bob"))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		before := settlementsFor(t, svc, expense.ID)

		badAmount := -1.0
		if _, err := svc.UpdateExpense(ctx, expense.ID, UpdateExpenseInput{Amount: &badAmount}); err == nil {
			t.Fatal("expected a validation error")
		}

		after := settlementsFor(t, svc, expense.ID)
		if len(after) != len(before) {
			t.Fatalf("settlements changed after failed update: %d -> %d", len(before), len(after))
		}
		for i := range after {
			if after[i].ID != before[i].ID {
				t.Error("settlement rows must be untouched by a failed update")
			}
		}
	})

	t.Run("switching split type reallocates", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, equalInput(6000, "Alice", "Bob", "Charlie"))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		splitType := models.SplitPercentage
		updated, err := svc.UpdateExpense(ctx, expense.ID, UpdateExpenseInput{
			SplitType:  &splitType,
			SplitInput: map[string]float64{"Alice": 10, "Bob": 50, "Charlie": 40},
		})
		if err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		if cents(updated.Allocation["Bob"]) != 300000 {
			t.Errorf("Bob share after percentage split: got %v, want 3000.00", updated.Allocation["Bob"])
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		amount := 10.0
		_, err := svc.UpdateExpense(ctx, "no-such-id", UpdateExpenseInput{Amount: &amount})
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("expected *models.NotFoundError, got %T: %v", err, err)
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	store := newTestStore(t)
	registerUsers(t, store, "Alice", "Bob")
	svc := NewExpenseService(store)
	ctx := context.Background()

	t.Run("delete removes expense and settlements", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, equalInput(10.00, "Alice", "Bob"))
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := svc.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if owned := settlementsFor(t, svc, expense.ID); len(owned) != 0 {
			t.Errorf("expected no settlements after delete, got %d", len(owned))
		}
		if _, err := svc.GetExpense(ctx, expense.ID); err == nil {
			t.Error("expected expense to be gone")
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		err := svc.DeleteExpense(ctx, "no-such-id")
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("expected *models.NotFoundError, got %T: %v", err, err)
		}
	})
}

func TestListExpensesNewestFirst(t *testing.T) {
	store := newTestStore(t)
	registerUsers(t, store, "Alice", "Bob")
	svc := NewExpenseService(store)
	ctx := context.Background()

	first, err := svc.CreateExpense(ctx, equalInput(10.00, "Alice", "Bob"))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// Backdate the first expense so ordering does not depend on the
	// clock resolution between two immediate inserts.
	older, err := svc.GetExpense(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	older.CreatedAt -= 3600
	if err := store.UpdateExpense(ctx, older); err != nil {
		t.Fatalf("backdating failed: %v", err)
	}

	second, err := svc.CreateExpense(ctx, equalInput(20.00, "Bob", "Alice"))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	expenses, err := svc.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if expenses[0].ID != second.ID {
		t.Error("expected newest expense first")
	}
}
