// Package calculator implements the pure split, settlement and balance
// math. Nothing in this package touches storage; every function is a
// deterministic computation over its inputs.
package calculator

import (
	"fmt"
	"math"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/money"
)

// sumTolerance is how far an exact split's total may drift from the
// expense amount, and a percentage split's weights from 100. Caller-typed
// amounts carry float noise; derived shares do not, so only these two
// checks get a tolerance.
const sumTolerance = 0.01

// Allocate computes the per-participant owed amounts for one expense.
//
// Participant order is load-bearing: for equal and percentage splits every
// share except the last is truncated to the minor unit, and the last
// listed participant absorbs the remainder so the shares sum back to
// amount exactly. Exact splits pass the caller's amounts through after
// validation.
//
// All failures are *models.ValidationError.
func Allocate(amount float64, participants []string, splitType models.SplitType, splitInput map[string]float64) (map[string]float64, error) {
	if amount <= 0 {
		return nil, models.NewValidationError("amount must be greater than 0")
	}
	if len(participants) < 2 {
		return nil, models.NewValidationError("at least two participants required")
	}

	var allocation map[string]float64
	var err error
	switch splitType {
	case models.SplitEqual:
		allocation = allocateEqual(amount, participants)
	case models.SplitExact:
		allocation, err = allocateExact(amount, participants, splitInput)
	case models.SplitPercentage:
		allocation, err = allocatePercentage(amount, participants, splitInput)
	default:
		return nil, models.NewValidationError(fmt.Sprintf("unknown split type %q", splitType))
	}
	if err != nil {
		return nil, err
	}

	if err := validateAllocation(allocation, participants); err != nil {
		return nil, err
	}
	return allocation, nil
}

// allocateEqual gives everyone the truncated even share; the last listed
// participant gets whatever is left so the total reconciles.
func allocateEqual(amount float64, participants []string) map[string]float64 {
	n := len(participants)
	share := money.RoundToMinorUnit(amount / float64(n))
	last := money.RoundToMinorUnit(amount - share*float64(n-1))

	allocation := make(map[string]float64, n)
	for i, p := range participants {
		if i == n-1 {
			allocation[p] = last
		} else {
			allocation[p] = share
		}
	}
	return allocation
}

// allocateExact takes the caller's per-person amounts verbatim. The sum
// must match the expense amount within sumTolerance; this is the one
// branch whose reconciliation is tolerant, since the values come straight
// from user input rather than derived arithmetic.
func allocateExact(amount float64, participants []string, splitInput map[string]float64) (map[string]float64, error) {
	if err := requireEntries(participants, splitInput); err != nil {
		return nil, err
	}

	total := 0.0
	allocation := make(map[string]float64, len(splitInput))
	for person, v := range splitInput {
		allocation[person] = v
		total += v
	}
	if math.Abs(total-amount) > sumTolerance {
		return nil, models.NewValidationError(
			fmt.Sprintf("exact split must total %.2f, found %.2f", amount, total))
	}
	return allocation, nil
}

// allocatePercentage converts percentage weights to amounts. Weights must
// sum to 100 within sumTolerance. Every share but the last is truncated;
// the last listed participant receives amount minus the running total.
func allocatePercentage(amount float64, participants []string, splitInput map[string]float64) (map[string]float64, error) {
	if err := requireEntries(participants, splitInput); err != nil {
		return nil, err
	}

	totalPercent := 0.0
	for _, v := range splitInput {
		totalPercent += v
	}
	if math.Abs(totalPercent-100) > sumTolerance {
		return nil, models.NewValidationError(
			fmt.Sprintf("percentage split must total 100, found %g", totalPercent))
	}

	n := len(participants)
	allocation := make(map[string]float64, n)
	runningTotal := 0.0
	for i, p := range participants {
		var v float64
		if i == n-1 {
			v = money.RoundToMinorUnit(amount - runningTotal)
		} else {
			v = money.RoundToMinorUnit(splitInput[p] / 100 * amount)
		}
		runningTotal += v
		allocation[p] = v
	}
	return allocation, nil
}

// requireEntries checks that every participant has a split input entry.
func requireEntries(participants []string, splitInput map[string]float64) error {
	var missing []string
	for _, p := range participants {
		if _, ok := splitInput[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return models.NewValidationError("missing split details for", missing...)
	}
	return nil
}

// validateAllocation enforces the invariants every finished allocation
// must hold regardless of split type: keys are exactly the participant
// set, and every share is strictly positive. A 0.00 share is rejected,
// not silently dropped.
func validateAllocation(allocation map[string]float64, participants []string) error {
	set := make(map[string]bool, len(participants))
	var missing []string
	for _, p := range participants {
		set[p] = true
		if _, ok := allocation[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return models.NewValidationError("missing split details for", missing...)
	}

	var invalid []string
	for person, v := range allocation {
		if !set[person] {
			invalid = append(invalid, fmt.Sprintf("%s is not a participant", person))
			continue
		}
		if v <= 0 {
			invalid = append(invalid, fmt.Sprintf("%s: %g", person, v))
		}
	}
	if len(invalid) > 0 {
		return models.NewValidationError("invalid split amounts (must be > 0)", invalid...)
	}
	return nil
}

// PaidFlags marks the payer's own share as covered (they fronted the
// money) and everyone else's as outstanding. Informational state for
// payment tracking; the settlement math never reads it.
func PaidFlags(participants []string, paidBy string) map[string]bool {
	flags := make(map[string]bool, len(participants))
	for _, p := range participants {
		flags[p] = p == paidBy
	}
	return flags
}

// EveryonePaid reports whether every flag in flags is set.
func EveryonePaid(flags map[string]bool) bool {
	for _, paid := range flags {
		if !paid {
			return false
		}
	}
	return true
}
