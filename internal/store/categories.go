package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmolina/recambios/internal/model"
)

// CreateCategory inserts a new category. Returns ErrDuplicate if the code is
// already taken. Code length and emptiness are validated by the caller.
func CreateCategory(ctx context.Context, db *sql.DB, code, name, description string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO categories (code, name, description) VALUES (?, ?, ?)`,
		code, name, nullIfEmpty(description),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating category: %w", err)
	}
	return nil
}

// GetCategory returns a category by code.
func GetCategory(ctx context.Context, db *sql.DB, code string) (*model.Category, error) {
	c := &model.Category{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT code, name, description FROM categories WHERE code = ?`, code,
	).Scan(&c.Code, &c.Name, &description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	c.Description = description.String
	return c, nil
}

// ListCategories returns all categories ordered by code.
func ListCategories(ctx context.Context, db *sql.DB) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT code, name, description FROM categories ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var description sql.NullString
		if err := rows.Scan(&c.Code, &c.Name, &description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// nullIfEmpty maps "" to SQL NULL so optional text columns stay NULL instead
// of holding empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
