package models

// Settlement represents one derived pairwise debt: a participant owes the
// payer their share of a single expense. Settlements are owned by their
// expense and are dropped and re-derived whenever the expense changes.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// ExpenseID is the owning expense. A settlement never outlives it.
	ExpenseID string

	// From is the person who owes.
	From string

	// To is the person who is owed (the expense's payer).
	To string

	// Amount is the debt at minor-unit precision, equal to From's
	// allocation on the owning expense.
	Amount float64

	// Category is copied from the expense at derivation time. It is a
	// snapshot, not re-synced unless the expense is re-derived.
	Category Category

	// CreatedAt is the Unix timestamp when the settlement was derived.
	CreatedAt int64
}
