package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// CreateExpense persists a new expense with its participant rows.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, paid_by, split_type, category, everyone_paid, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount, expense.PaidBy,
		string(expense.SplitType), string(expense.Category),
		boolToInt(expense.EveryonePaid), expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertParticipants(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including participants, split
// input and allocation.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var splitType, category string
	var everyonePaid int

	err := s.db.QueryRowContext(ctx,
		`SELECT id, description, amount, paid_by, split_type, category, everyone_paid, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PaidBy,
		&splitType, &category, &everyonePaid, &expense.CreatedAt, &expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.SplitType = models.SplitType(splitType)
	expense.Category = models.Category(category)
	expense.EveryonePaid = everyonePaid != 0

	if err := s.loadParticipants(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense replaces a stored expense and its participant rows.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount = ?, paid_by = ?, split_type = ?, category = ?, everyone_paid = ?, created_at = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Description, expense.Amount, expense.PaidBy,
		string(expense.SplitType), string(expense.Category),
		boolToInt(expense.EveryonePaid), expense.CreatedAt, expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_participants WHERE expense_id = ?", expense.ID,
	); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense; participant and settlement rows
// cascade away with it.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListExpenses returns all expenses, most recent first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, paid_by, split_type, category, everyone_paid, created_at, updated_at
		 FROM expenses ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var splitType, category string
		var everyonePaid int
		if err := rows.Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PaidBy,
			&splitType, &category, &everyonePaid, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.SplitType = models.SplitType(splitType)
		expense.Category = models.Category(category)
		expense.EveryonePaid = everyonePaid != 0
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadParticipants(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// insertParticipants writes one row per participant, preserving list
// position so the order-sensitive split math survives a round trip.
func insertParticipants(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i, name := range expense.Participants {
		var splitInput interface{}
		if v, ok := expense.SplitInput[name]; ok {
			splitInput = v
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_participants (expense_id, position, name, split_input, share, paid)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			expense.ID, i, name, splitInput, expense.Allocation[name],
			boolToInt(expense.PaidFlags[name]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// loadParticipants populates Participants, SplitInput, Allocation and
// PaidFlags from the participant rows, in stored position order.
func (s *SQLiteStore) loadParticipants(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, split_input, share, paid FROM expense_participants
		 WHERE expense_id = ? ORDER BY position`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	expense.Participants = nil
	expense.SplitInput = make(map[string]float64)
	expense.Allocation = make(map[string]float64)
	expense.PaidFlags = make(map[string]bool)

	for rows.Next() {
		var name string
		var splitInput sql.NullFloat64
		var share float64
		var paid int
		if err := rows.Scan(&name, &splitInput, &share, &paid); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		expense.Participants = append(expense.Participants, name)
		if splitInput.Valid {
			expense.SplitInput[name] = splitInput.Float64
		}
		expense.Allocation[name] = share
		expense.PaidFlags[name] = paid != 0
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
