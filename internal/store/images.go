package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmolina/recambios/internal/model"
)

// AddProductImage records a stored image for a product. Position is the
// 0-based index of the blob within the upload that created the product.
func AddProductImage(ctx context.Context, db *sql.DB, productID int64, path string, position int, isPrimary bool) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO product_images (product_id, path, position, is_primary) VALUES (?, ?, ?, ?)`,
		productID, path, position, isPrimary,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("adding product image: %w", err)
	}
	return nil
}

// ListProductImages returns a product's images, primary first, then by
// upload position.
func ListProductImages(ctx context.Context, db *sql.DB, productID int64) ([]model.ProductImage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, product_id, path, position, is_primary, created_at
		 FROM product_images WHERE product_id = ?
		 ORDER BY is_primary DESC, position`, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing product images: %w", err)
	}
	defer rows.Close()

	return scanImages(rows)
}

// ListAllImages returns every image row, grouped by product and ordered
// primary first within each group. Listing endpoints fetch this once and
// merge in memory instead of querying per product.
func ListAllImages(ctx context.Context, db *sql.DB) ([]model.ProductImage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, product_id, path, position, is_primary, created_at
		 FROM product_images
		 ORDER BY product_id, is_primary DESC, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer rows.Close()

	return scanImages(rows)
}

func scanImages(rows *sql.Rows) ([]model.ProductImage, error) {
	var images []model.ProductImage
	for rows.Next() {
		var img model.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Path, &img.Position, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
