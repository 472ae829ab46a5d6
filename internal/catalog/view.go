package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmolina/recambios/internal/model"
	"github.com/dmolina/recambios/internal/store"
)

// ListProductViews returns every product as a view, newest first: product
// fields plus resolved category name and the ordered image paths. Products
// and images are fetched in two queries and merged in one pass, so listing
// cost does not grow with a per-product image query.
func ListProductViews(ctx context.Context, db *sql.DB) ([]model.ProductView, error) {
	products, err := store.ListProductsWithCategory(ctx, db)
	if err != nil {
		return nil, err
	}

	images, err := store.ListAllImages(ctx, db)
	if err != nil {
		return nil, err
	}

	// Image rows arrive grouped by product, primary first.
	byProduct := make(map[int64][]string)
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img.Path)
	}

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, buildView(p.Product, p.CategoryName, byProduct[p.ID]))
	}
	return views, nil
}

// GetProductView returns the view for a single product, or nil if the
// product does not exist.
func GetProductView(ctx context.Context, db *sql.DB, id int64) (*model.ProductView, error) {
	p, err := store.GetProduct(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return assembleView(ctx, db, p)
}

// FindProduct resolves a free-text query to a product view. Precedence:
// exact numeric ID, exact OE code (case-insensitive), then the first
// name-substring match (case-insensitive, newest first). Returns nil when
// nothing matches.
func FindProduct(ctx context.Context, db *sql.DB, query string) (*model.ProductView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		view, err := GetProductView(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if view != nil {
			return view, nil
		}
	}

	p, err := findByOE(ctx, db, query)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = findByName(ctx, db, query)
		if err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, nil
	}
	return assembleView(ctx, db, p)
}

// assembleView attaches the category name and image set to a product.
func assembleView(ctx context.Context, db *sql.DB, p *model.Product) (*model.ProductView, error) {
	var categoryName string
	if p.CategoryCode != "" {
		category, err := store.GetCategory(ctx, db, p.CategoryCode)
		if err != nil {
			return nil, err
		}
		if category != nil {
			categoryName = category.Name
		}
	}

	images, err := store.ListProductImages(ctx, db, p.ID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(images))
	for _, img := range images {
		paths = append(paths, img.Path)
	}

	view := buildView(*p, categoryName, paths)
	return &view, nil
}

// buildView assembles a ProductView from pre-fetched parts. Images arrive
// primary first, so the projection is just the head of the list.
func buildView(p model.Product, categoryName string, images []string) model.ProductView {
	view := model.ProductView{
		Product:      p,
		CategoryName: categoryName,
		Images:       images,
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if len(view.Images) > 0 {
		view.PrimaryImage = view.Images[0]
	}
	return view
}

func findByOE(ctx context.Context, db *sql.DB, oeCode string) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id FROM products WHERE lower(oe_code) = lower(?) LIMIT 1`, oeCode)
	var id int64
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding product by oe code: %w", err)
	}
	return store.GetProduct(ctx, db, id)
}

func findByName(ctx context.Context, db *sql.DB, name string) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id FROM products WHERE instr(lower(name), lower(?)) > 0
		 ORDER BY created_at DESC, id DESC LIMIT 1`, name)
	var id int64
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding product by name: %w", err)
	}
	return store.GetProduct(ctx, db, id)
}
