package service

import (
	"context"
	"errors"
	"testing"

	"github.com/splittab/splittab/internal/models"
)

func TestRegisterUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	t.Run("registers and trims", func(t *testing.T) {
		user, err := svc.RegisterUser(ctx, "  Alice Smith ")
		if err != nil {
			t.Fatalf("RegisterUser failed: %v", err)
		}
		if user.Name != "Alice Smith" {
			t.Errorf("got %q, want trimmed name", user.Name)
		}
		if user.ID == "" {
			t.Error("expected generated ID")
		}
	})

	t.Run("too short", func(t *testing.T) {
		_, err := svc.RegisterUser(ctx, "A")
		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("non-letter characters", func(t *testing.T) {
		_, err := svc.RegisterUser(ctx, "Alice42")
		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		if _, err := svc.RegisterUser(ctx, "Bob"); err != nil {
			t.Fatalf("RegisterUser failed: %v", err)
		}
		_, err := svc.RegisterUser(ctx, "Bob")
		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("expected validation error for duplicate, got %v", err)
		}
	})
}

func TestListUsers(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	for _, name := range []string{"Charlie", "Alice"} {
		if _, err := svc.RegisterUser(ctx, name); err != nil {
			t.Fatalf("RegisterUser failed: %v", err)
		}
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Alice" {
		t.Errorf("expected name-ordered users, got %v", users)
	}
}
