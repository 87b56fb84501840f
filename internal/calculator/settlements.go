package calculator

import (
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/money"
)

// DeriveSettlements turns a validated allocation into pairwise debts: one
// settlement per participant other than the payer, each owing the payer
// their allocated share. The payer contributes no self-settlement.
//
// Settlements are emitted in participant order. This is a pure function of
// an already-validated expense and cannot fail on valid input; IDs and
// timestamps are left for the store to assign.
func DeriveSettlements(expense *models.Expense) []models.Settlement {
	settlements := make([]models.Settlement, 0, len(expense.Participants))
	for _, p := range expense.Participants {
		if p == expense.PaidBy {
			continue
		}
		share, ok := expense.ShareOf(p)
		if !ok {
			continue
		}
		settlements = append(settlements, models.Settlement{
			ExpenseID: expense.ID,
			From:      p,
			To:        expense.PaidBy,
			Amount:    money.RoundToMinorUnit(share),
			Category:  expense.Category,
		})
	}
	return settlements
}
