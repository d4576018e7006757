package application

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterUser_Validation(t *testing.T) {
	t.Parallel()

	service := NewUserService(newMemStore(), nil)

	cases := []struct {
		name       string
		userName   string
		email      string
		wantFields []string
	}{
		{name: "missing everything", wantFields: []string{"name", "email"}},
		{name: "missing email", userName: "Alice", wantFields: []string{"email"}},
		{name: "invalid email", userName: "Alice", email: "not-an-address", wantFields: []string{"email"}},
		{name: "blank name", userName: "   ", email: "alice@example.com", wantFields: []string{"name"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.RegisterUser(context.Background(), tc.userName, tc.email)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			for _, field := range tc.wantFields {
				if _, ok := vErr.FieldErrors[field]; !ok {
					t.Fatalf("expected an error for field %q, got %v", field, vErr.FieldErrors)
				}
			}
		})
	}
}

func TestRegisterUser_TrimsInput(t *testing.T) {
	t.Parallel()

	service := NewUserService(newMemStore(), nil)

	user, err := service.RegisterUser(context.Background(), "  Alice  ", " alice@example.com ")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Fatalf("input not trimmed: %+v", user)
	}
}

func TestRegisterUser_ExistingEmailReturnsExisting(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	existing := store.addUser("Alice", "alice@example.com")
	service := NewUserService(store, nil)

	user, err := service.RegisterUser(context.Background(), "Imposter", "alice@example.com")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if user.ID != existing.ID || user.Name != "Alice" {
		t.Fatalf("expected the existing user back, got %+v", user)
	}
}

func TestGetUser_MapsNotFound(t *testing.T) {
	t.Parallel()

	service := NewUserService(newMemStore(), nil)

	if _, err := service.GetUser(context.Background(), 4242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
