// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splittab/splittab/internal/models"
)

// ErrNotFound is returned by fetch, update and delete operations when the
// targeted record does not exist. Callers distinguish it from store-level
// failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// ExpenseStore persists expenses together with their participants, split
// input and derived allocation.
type ExpenseStore interface {
	// CreateExpense persists a new expense. ID and CreatedAt are
	// populated by the store when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, or ErrNotFound.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// UpdateExpense replaces a stored expense, or ErrNotFound.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense by ID, or ErrNotFound.
	DeleteExpense(ctx context.Context, id string) error

	// ListExpenses returns all expenses, most recent first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
}

// SettlementStore persists the debts derived from expenses. Settlements
// are only ever written or removed in bulk per owning expense; they have
// no independent lifecycle.
type SettlementStore interface {
	// CreateSettlements persists a batch of settlements. IDs and
	// CreatedAt are populated by the store when unset.
	CreateSettlements(ctx context.Context, settlements []models.Settlement) error

	// DeleteSettlementsByExpense removes every settlement owned by the
	// given expense. Removing zero rows is not an error.
	DeleteSettlementsByExpense(ctx context.Context, expenseID string) error

	// ListSettlements returns all settlements, most recent first.
	ListSettlements(ctx context.Context) ([]*models.Settlement, error)
}

// UserStore is the person registry expenses are validated against.
type UserStore interface {
	// CreateUser registers a new user. Names are unique.
	CreateUser(ctx context.Context, user *models.User) error

	// ListUsers returns all registered users ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// ExistingNames returns the subset of names that are registered.
	ExistingNames(ctx context.Context, names []string) (map[string]bool, error)
}

// Store is the full persistence surface the services depend on. The
// abstraction allows swapping backends without touching the service layer.
type Store interface {
	ExpenseStore
	SettlementStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
