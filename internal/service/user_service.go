package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/storage"
)

// namePattern restricts user names to letters and spaces, matching what
// the expense records use as person identifiers.
var namePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)

// UserService manages the person registry expenses are validated against.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// RegisterUser adds a new person. Names are trimmed, must be at least two
// characters of letters and spaces, and must be unique.
func (s *UserService) RegisterUser(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, models.NewValidationError("name must be at least 2 characters long")
	}
	if !namePattern.MatchString(name) {
		return nil, models.NewValidationError("name can only contain letters and spaces", name)
	}

	existing, err := s.store.ExistingNames(ctx, []string{name})
	if err != nil {
		return nil, models.NewStoreError("check users", err)
	}
	if existing[name] {
		return nil, models.NewValidationError("user already exists", name)
	}

	user := &models.User{Name: name}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, models.NewStoreError("create user", err)
	}
	return user, nil
}

// ListUsers returns all registered users ordered by name.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, models.NewStoreError("list users", err)
	}
	return users, nil
}
