package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Uniqueness rules the application depends on live here: users.email,
// products.oe_code and the categories primary key. Duplicate detection
// happens through these constraints, not through check-then-insert.
//
// products.category_code is intentionally not a foreign key: a product may
// carry a code that no longer (or never) matched a category, and listings
// resolve it with a null-safe left join.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
    code        TEXT PRIMARY KEY CHECK (length(code) <= 6),
    name        TEXT NOT NULL,
    description TEXT
);

CREATE TABLE IF NOT EXISTS products (
    id                INTEGER PRIMARY KEY,
    name              TEXT NOT NULL,
    description       TEXT,
    brand             TEXT,
    oe_code           TEXT NOT NULL UNIQUE,
    supplier_code     TEXT,
    package_code      TEXT,
    barcode           TEXT,
    category_code     TEXT,
    side              TEXT NOT NULL DEFAULT 'n/a' CHECK (side IN ('left', 'right', 'both', 'n/a')),
    unit              TEXT,
    weight            TEXT,
    tariff_code       TEXT,
    capacity          TEXT,
    tags              TEXT,
    direct_references TEXT,
    public_info       TEXT,
    reserved_info     TEXT,
    stock_accounting  INTEGER NOT NULL DEFAULT 0 CHECK (stock_accounting >= 0),
    stock_physical    INTEGER NOT NULL DEFAULT 0 CHECK (stock_physical >= 0),
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS product_images (
    id         INTEGER PRIMARY KEY,
    product_id INTEGER NOT NULL REFERENCES products(id),
    path       TEXT NOT NULL,
    position   INTEGER NOT NULL,
    is_primary INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (product_id, position)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
