// Package service orchestrates the calculator and the store: expense
// lifecycle (allocate, derive, recalculate), the person registry, and the
// read-only reporting queries.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/splittab/splittab/internal/calculator"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// CreateExpenseInput carries the caller-supplied fields for a new expense.
type CreateExpenseInput struct {
	Description  string
	Amount       float64
	PaidBy       string
	Participants []string
	SplitType    models.SplitType
	SplitInput   map[string]float64
	Category     string
}

// UpdateExpenseInput carries a partial update. Nil fields keep their prior
// values; only the fields below may change through an update.
type UpdateExpenseInput struct {
	Description  *string
	Amount       *float64
	PaidBy       *string
	Participants []string
	SplitType    *models.SplitType
	SplitInput   map[string]float64
	Category     *string
}

// ExpenseService owns the expense lifecycle. Every mutation re-runs the
// allocator and keeps the derived settlements in lockstep with the stored
// allocation: validation must fully succeed before any settlement row is
// touched, so a failed update never strips an expense of its settlements.
type ExpenseService struct {
	store storage.Store

	// Per-expense mutation lock. Two updates racing through
	// validate / delete old settlements / insert new ones would
	// interleave into stale or duplicate rows.
	locks keyedMutex
}

// NewExpenseService creates an ExpenseService backed by the given store.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense validates the input, allocates shares, persists the
// expense and derives its settlements. Nothing is written if validation
// fails.
func (s *ExpenseService) CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	splitType := input.SplitType
	if splitType == "" {
		splitType = models.SplitEqual
	}

	if err := s.checkPeopleExist(ctx, input.PaidBy, input.Participants); err != nil {
		return nil, err
	}

	allocation, err := calculator.Allocate(input.Amount, input.Participants, splitType, input.SplitInput)
	if err != nil {
		return nil, err
	}

	paidFlags := calculator.PaidFlags(input.Participants, input.PaidBy)
	expense := &models.Expense{
		Description:  strings.TrimSpace(input.Description),
		Amount:       input.Amount,
		PaidBy:       input.PaidBy,
		Participants: input.Participants,
		SplitType:    splitType,
		SplitInput:   input.SplitInput,
		Allocation:   allocation,
		PaidFlags:    paidFlags,
		EveryonePaid: calculator.EveryonePaid(paidFlags),
		Category:     models.NormalizeCategory(input.Category),
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, models.NewStoreError("create expense", err)
	}

	if err := s.store.CreateSettlements(ctx, calculator.DeriveSettlements(expense)); err != nil {
		// Roll the expense back so a half-created record never
		// surfaces without its settlements.
		if delErr := s.store.DeleteExpense(ctx, expense.ID); delErr != nil {
			slog.Error("failed to roll back expense after settlement write failure",
				"expense_id", expense.ID, "error", delErr)
		}
		return nil, models.NewStoreError("create settlements", err)
	}

	return expense, nil
}

// UpdateExpense merges the allowed fields into the stored expense,
// re-allocates, and only after successful re-validation replaces the
// derived settlements.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, input UpdateExpenseInput) (*models.Expense, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, asLookupError("expense", err)
	}

	if input.Description != nil {
		expense.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.PaidBy != nil {
		expense.PaidBy = *input.PaidBy
	}
	if input.Participants != nil {
		expense.Participants = input.Participants
	}
	if input.SplitType != nil {
		expense.SplitType = *input.SplitType
	}
	if input.SplitInput != nil {
		expense.SplitInput = input.SplitInput
	}
	if input.Category != nil {
		expense.Category = models.NormalizeCategory(*input.Category)
	}

	if err := s.checkPeopleExist(ctx, expense.PaidBy, expense.Participants); err != nil {
		return nil, err
	}

	allocation, err := calculator.Allocate(expense.Amount, expense.Participants, expense.SplitType, expense.SplitInput)
	if err != nil {
		return nil, err
	}
	expense.Allocation = allocation
	expense.PaidFlags = calculator.PaidFlags(expense.Participants, expense.PaidBy)
	expense.EveryonePaid = calculator.EveryonePaid(expense.PaidFlags)

	// Validation succeeded; now the destructive part. A store failure
	// between these writes can leave the expense briefly without
	// settlements, which the next successful update repairs.
	if err := s.store.DeleteSettlementsByExpense(ctx, expense.ID); err != nil {
		return nil, models.NewStoreError("delete settlements", err)
	}
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, asLookupError("expense", err)
	}
	if err := s.store.CreateSettlements(ctx, calculator.DeriveSettlements(expense)); err != nil {
		return nil, models.NewStoreError("create settlements", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense and every settlement derived from it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.DeleteSettlementsByExpense(ctx, id); err != nil {
		return models.NewStoreError("delete settlements", err)
	}
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return asLookupError("expense", err)
	}
	return nil
}

// GetExpense fetches a single expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, asLookupError("expense", err)
	}
	return expense, nil
}

// ListExpenses returns all expenses, most recent first.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, models.NewStoreError("list expenses", err)
	}
	return expenses, nil
}

// ListSettlements returns all settlements, most recent first.
func (s *ExpenseService) ListSettlements(ctx context.Context) ([]*models.Settlement, error) {
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return nil, models.NewStoreError("list settlements", err)
	}
	return settlements, nil
}

// checkPeopleExist rejects expenses referencing unregistered people. The
// store only answers which names exist; deciding what is missing stays
// here so the allocator itself never needs a store.
func (s *ExpenseService) checkPeopleExist(ctx context.Context, paidBy string, participants []string) error {
	names := make([]string, 0, len(participants)+1)
	if paidBy != "" {
		names = append(names, paidBy)
	}
	names = append(names, participants...)

	existing, err := s.store.ExistingNames(ctx, names)
	if err != nil {
		return models.NewStoreError("check users", err)
	}

	var missing []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !existing[name] && !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return models.NewNotFoundError("these users do not exist", missing...)
	}
	return nil
}

// asLookupError maps the store's not-found sentinel to the domain
// NotFoundError and wraps anything else as a StoreError.
func asLookupError(entity string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewNotFoundError(entity + " not found")
	}
	return models.NewStoreError("lookup "+entity, err)
}

// keyedMutex hands out one mutex per key. Entries are never reaped; the
// key space is expense IDs, which is small enough not to matter.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
