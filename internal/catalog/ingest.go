// Package catalog implements the product ingestion pipeline and the read
// projections used by listings and the product profile page.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmolina/recambios/internal/imaging"
	"github.com/dmolina/recambios/internal/model"
	"github.com/dmolina/recambios/internal/store"
)

// MaxImageSize is the per-image upload limit.
const MaxImageSize = 10 << 20 // 10 MiB

// ProductImagesDir is the subdirectory of the uploads root that holds all
// product photos. Stored paths are relative to the uploads root so they can
// be served under the static /uploads/ prefix.
const ProductImagesDir = "products"

// ErrDuplicateReference is returned when a product with the same OE code
// already exists. Nothing is written in that case.
var ErrDuplicateReference = errors.New("a product with this OE reference already exists")

// ValidationError reports malformed or missing product input. Its message is
// safe to show to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ImageUpload is one file part of a product submission. Open is called at
// most once, only after the declared type and size checks pass.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SkippedImage explains why one uploaded blob was not stored.
type SkippedImage struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Report summarizes an ingestion: the new product ID, the stored image paths
// in upload order, and the blobs that were skipped. Saved and skipped are
// reported separately so a partial save is never mistaken for a full one.
type Report struct {
	ProductID int64
	Saved     []string
	Skipped   []SkippedImage
}

// CreateProduct runs the ingestion pipeline: validate the submission, insert
// the product row, then store each image best-effort. Validation and
// duplicate-OE failures abort with no side effects. Once the product row
// exists it stays: a failing image only skips that image, so a product can
// legitimately end up with fewer images than were submitted, or none.
func CreateProduct(ctx context.Context, db *sql.DB, uploadsDir string, p *model.Product, images []ImageUpload) (*Report, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	id, err := store.CreateProduct(ctx, db, p)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	report := &Report{ProductID: id}

	// Positions follow submission order even across skips, so a skipped
	// first blob means no image carries the primary flag; listings then
	// fall back to the lowest position.
	for i, img := range images {
		ref, reason := saveImage(ctx, db, uploadsDir, id, i, img)
		if reason != "" {
			report.Skipped = append(report.Skipped, SkippedImage{Filename: img.Filename, Reason: reason})
			continue
		}
		report.Saved = append(report.Saved, ref)
	}

	return report, nil
}

// saveImage persists one uploaded blob and records its attachment row.
// Returns the stored reference path, or a non-empty skip reason. Never
// returns an error: a failing image must not fail the submission.
func saveImage(ctx context.Context, db *sql.DB, uploadsDir string, productID int64, index int, img ImageUpload) (ref, reason string) {
	if !strings.HasPrefix(img.ContentType, "image/") {
		return "", "not an image"
	}
	if img.Size > MaxImageSize {
		return "", "larger than 10 MiB"
	}

	file, err := img.Open()
	if err != nil {
		slog.Error("opening uploaded image", "file", img.Filename, "error", err)
		return "", "could not read file"
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		slog.Error("reading uploaded image", "file", img.Filename, "error", err)
		return "", "could not read file"
	}
	if len(data) > MaxImageSize {
		return "", "larger than 10 MiB"
	}

	normalized, err := imaging.Normalize(data)
	if err != nil {
		slog.Warn("rejecting uploaded image", "file", img.Filename, "error", err)
		return "", "not a decodable image"
	}

	// Filename encodes product, position and a timestamp so names never
	// collide inside the shared product images directory.
	name := fmt.Sprintf("product_%d_%d_%d.jpg", productID, index, time.Now().UnixMilli())
	relPath := filepath.Join(ProductImagesDir, name)

	if err := os.MkdirAll(filepath.Join(uploadsDir, ProductImagesDir), 0o755); err != nil {
		slog.Error("creating product images directory", "error", err)
		return "", "could not store file"
	}
	if err := os.WriteFile(filepath.Join(uploadsDir, relPath), normalized, 0o644); err != nil {
		slog.Error("writing product image", "path", relPath, "error", err)
		return "", "could not store file"
	}

	if err := store.AddProductImage(ctx, db, productID, relPath, index, index == 0); err != nil {
		slog.Error("recording product image", "path", relPath, "error", err)
		os.Remove(filepath.Join(uploadsDir, relPath))
		return "", "could not store file"
	}

	return relPath, ""
}

// validate applies the fail-fast submission checks. Uniqueness of the OE
// code is left to the database constraint.
func validate(p *model.Product) error {
	if p.Name == "" || p.OECode == "" {
		return &ValidationError{Reason: "name and OE reference are required"}
	}
	if p.Side == "" {
		p.Side = model.SideNA
	}
	if !model.ValidSide(p.Side) {
		return &ValidationError{Reason: "side must be one of left, right, both or n/a"}
	}
	if p.StockAccounting < 0 || p.StockPhysical < 0 {
		return &ValidationError{Reason: "stock values cannot be negative"}
	}
	return nil
}
