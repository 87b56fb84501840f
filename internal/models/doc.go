// Package models defines the core domain types for splittab.
//
// # Ownership
//
// Expense is the aggregate root. Settlement rows are derived from an
// expense's allocation and belong to exactly one expense: they are deleted
// and recreated whenever the expense's split changes, and cascade away when
// the expense is deleted. Users are a flat registry of names; every payer
// and participant on an expense must be a registered user.
//
// # Derived state
//
// Allocation, PaidFlags and EveryonePaid on an Expense are computed by the
// calculator package, never supplied by callers (exact splits pass through
// the caller's amounts, but only after validation). Balances are not a
// stored entity at all; they are recomputed from the full expense set on
// every query.
package models
