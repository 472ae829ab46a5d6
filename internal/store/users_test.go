package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dmolina/recambios/internal/db"
)

func TestCreateAndGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "a@a.com", "Ana", "hash123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "a@a.com" || user.Name != "Ana" {
		t.Errorf("unexpected user: %+v", user)
	}

	got, err := GetUserByEmail(ctx, database, "a@a.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("expected user %d, got %+v", user.ID, got)
	}

	missing, err := GetUserByEmail(ctx, database, "b@b.com")
	if err != nil {
		t.Fatalf("GetUserByEmail missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "a@a.com", "Ana", "hash")
	_, err := CreateUser(ctx, database, "a@a.com", "Otra", "hash")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	count, err := CountUsers(ctx, database)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 users, got %d", count)
	}

	CreateUser(ctx, database, "a@a.com", "Ana", "hash")
	count, _ = CountUsers(ctx, database)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}
