package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splittab/splittab/internal/models"
)

// CreateSettlements persists a batch of settlements in one transaction.
func (s *SQLiteStore) CreateSettlements(ctx context.Context, settlements []models.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for i := range settlements {
		settlement := &settlements[i]
		if settlement.ID == "" {
			settlement.ID = uuid.New().String()
		}
		if settlement.CreatedAt == 0 {
			settlement.CreatedAt = now
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (id, expense_id, from_user, to_user, amount, category, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, settlement.ExpenseID, settlement.From, settlement.To,
			settlement.Amount, string(settlement.Category), settlement.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSettlementsByExpense removes every settlement owned by an expense.
// Deleting zero rows is fine; an expense may legitimately have none yet.
func (s *SQLiteStore) DeleteSettlementsByExpense(ctx context.Context, expenseID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM settlements WHERE expense_id = ?", expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete settlements: %w", err)
	}
	return nil
}

// ListSettlements returns all settlements, most recent first.
func (s *SQLiteStore) ListSettlements(ctx context.Context) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, from_user, to_user, amount, category, created_at
		 FROM settlements ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var category string
		if err := rows.Scan(&settlement.ID, &settlement.ExpenseID, &settlement.From,
			&settlement.To, &settlement.Amount, &category, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Category = models.Category(category)
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
