package models

// User is a registered person. Expenses may only reference registered
// names; the name doubles as the identifier everywhere else.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the unique display name (letters and spaces only).
	Name string

	// CreatedAt is the Unix timestamp when the user was registered.
	CreatedAt int64
}
