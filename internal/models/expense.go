package models

// SplitType selects the rule used to divide an expense among its participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly; the last listed participant
	// absorbs any rounding remainder.
	SplitEqual SplitType = "equal"

	// SplitExact takes the caller-provided per-person amounts verbatim.
	SplitExact SplitType = "exact"

	// SplitPercentage divides the amount by caller-provided percentage
	// weights summing to 100.
	SplitPercentage SplitType = "percentage"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// Expense represents one shared cost event and its derived split state.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a human-readable note for the expense.
	Description string

	// Amount is the total cost in currency units, always > 0,
	// at minor-unit (2 decimal) precision.
	Amount float64

	// PaidBy is the person who fronted the money.
	PaidBy string

	// Participants is the ordered list of people sharing the expense.
	// Order matters: the last participant absorbs rounding remainders
	// for equal and percentage splits.
	Participants []string

	// SplitType selects the allocation rule.
	SplitType SplitType

	// SplitInput holds the raw per-person values supplied by the caller.
	// Ignored for equal splits; absolute amounts for exact splits;
	// percentages for percentage splits.
	SplitInput map[string]float64

	// Allocation is the validated per-participant owed amount. Derived;
	// its keys are exactly the participant set and its values sum to
	// Amount at minor-unit precision.
	Allocation map[string]float64

	// PaidFlags marks which participants have covered their share.
	// The payer is always true.
	PaidFlags map[string]bool

	// EveryonePaid is true when every paid flag is set.
	EveryonePaid bool

	// Category classifies the expense.
	Category Category

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64
}

// ShareOf returns p's allocated share and whether p participates.
func (e *Expense) ShareOf(p string) (float64, bool) {
	v, ok := e.Allocation[p]
	return v, ok
}
