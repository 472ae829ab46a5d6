package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dmolina/recambios/internal/db"
)

func TestCreateAndListCategories(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := CreateCategory(ctx, database, "FRENOS", "Sistema de Frenos", ""); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := CreateCategory(ctx, database, "ACEITE", "Lubricantes", "Aceites y filtros"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	categories, err := ListCategories(ctx, database)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}

	// Ordered by code ascending.
	if categories[0].Code != "ACEITE" || categories[1].Code != "FRENOS" {
		t.Errorf("expected codes [ACEITE FRENOS], got [%s %s]", categories[0].Code, categories[1].Code)
	}
	if categories[0].Description != "Aceites y filtros" {
		t.Errorf("expected description to round-trip, got %q", categories[0].Description)
	}
}

func TestCreateCategoryDuplicateCode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := CreateCategory(ctx, database, "MOTOR", "Motor", ""); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	err := CreateCategory(ctx, database, "MOTOR", "Otro nombre", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for duplicate code, got %v", err)
	}

	categories, _ := ListCategories(ctx, database)
	if len(categories) != 1 {
		t.Errorf("expected 1 category after duplicate insert, got %d", len(categories))
	}
	if categories[0].Name != "Motor" {
		t.Errorf("original category should be unchanged, got name %q", categories[0].Name)
	}
}

func TestCategoryCodeIsCaseSensitive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateCategory(ctx, database, "MOTOR", "Motor", "")
	if err := CreateCategory(ctx, database, "motor", "Motor en minúsculas", ""); err != nil {
		t.Errorf("lowercase code should not collide with uppercase: %v", err)
	}
}

func TestGetCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateCategory(ctx, database, "SUSP", "Suspensión", "")

	c, err := GetCategory(ctx, database, "SUSP")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if c == nil || c.Name != "Suspensión" {
		t.Errorf("expected category Suspensión, got %+v", c)
	}

	missing, err := GetCategory(ctx, database, "NOPE")
	if err != nil {
		t.Fatalf("GetCategory missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing category")
	}
}
