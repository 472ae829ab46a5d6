package catalog

import (
	"context"
	"strconv"
	"testing"

	"github.com/dmolina/recambios/internal/db"
	"github.com/dmolina/recambios/internal/store"
)

func TestListProductViews(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	store.CreateCategory(ctx, database, "FRENOS", "Sistema de Frenos", "")

	withCat := testProduct("Disco de freno", "OE100")
	withCat.CategoryCode = "FRENOS"
	discID, _ := store.CreateProduct(ctx, database, withCat)
	store.AddProductImage(ctx, database, discID, "products/disc_0.jpg", 0, true)
	store.AddProductImage(ctx, database, discID, "products/disc_1.jpg", 1, false)

	bareID, _ := store.CreateProduct(ctx, database, testProduct("Pieza sin nada", "OE101"))

	views, err := ListProductViews(ctx, database)
	if err != nil {
		t.Fatalf("ListProductViews: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	// Newest first.
	if views[0].ID != bareID || views[1].ID != discID {
		t.Errorf("expected newest first, got ids [%d %d]", views[0].ID, views[1].ID)
	}

	disc := views[1]
	if disc.CategoryName != "Sistema de Frenos" {
		t.Errorf("expected resolved category name, got %q", disc.CategoryName)
	}
	if disc.PrimaryImage != "products/disc_0.jpg" {
		t.Errorf("expected primary image disc_0, got %q", disc.PrimaryImage)
	}
	if len(disc.Images) != 2 || disc.Images[0] != "products/disc_0.jpg" || disc.Images[1] != "products/disc_1.jpg" {
		t.Errorf("unexpected image list: %v", disc.Images)
	}

	bare := views[0]
	if bare.PrimaryImage != "" {
		t.Errorf("expected no primary image, got %q", bare.PrimaryImage)
	}
	if bare.Images == nil || len(bare.Images) != 0 {
		t.Errorf("expected empty (non-nil) image list, got %#v", bare.Images)
	}
	if bare.CategoryName != "" {
		t.Errorf("expected empty category name, got %q", bare.CategoryName)
	}
}

func TestListProductViewsIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id1, _ := store.CreateProduct(ctx, database, testProduct("Uno", "OE110"))
	store.CreateProduct(ctx, database, testProduct("Dos", "OE111"))
	store.AddProductImage(ctx, database, id1, "products/uno.jpg", 0, true)

	first, err := ListProductViews(ctx, database)
	if err != nil {
		t.Fatalf("ListProductViews: %v", err)
	}
	second, err := ListProductViews(ctx, database)
	if err != nil {
		t.Fatalf("ListProductViews again: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].PrimaryImage != second[i].PrimaryImage {
			t.Errorf("listing changed between calls at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestPrimaryImageFallsBackToLowestPosition(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id, _ := store.CreateProduct(ctx, database, testProduct("Faro", "OE120"))
	// No image carries the primary flag (first upload was skipped).
	store.AddProductImage(ctx, database, id, "products/pos2.jpg", 2, false)
	store.AddProductImage(ctx, database, id, "products/pos1.jpg", 1, false)

	view, err := GetProductView(ctx, database, id)
	if err != nil {
		t.Fatalf("GetProductView: %v", err)
	}
	if view.PrimaryImage != "products/pos1.jpg" {
		t.Errorf("expected fallback to lowest position, got %q", view.PrimaryImage)
	}
}

func TestGetProductViewMissing(t *testing.T) {
	database := db.NewTestDB(t)

	view, err := GetProductView(context.Background(), database, 999)
	if err != nil {
		t.Fatalf("GetProductView: %v", err)
	}
	if view != nil {
		t.Error("expected nil for missing product")
	}
}

func TestFindProductPrecedence(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	bujeID, _ := store.CreateProduct(ctx, database, testProduct("Buje de suspensión", "OE123"))
	store.CreateProduct(ctx, database, testProduct("Disco de freno", "FR200"))

	// Numeric id wins.
	byID, err := FindProduct(ctx, database, strconv.FormatInt(bujeID, 10))
	if err != nil {
		t.Fatalf("FindProduct by id: %v", err)
	}
	if byID == nil || byID.ID != bujeID {
		t.Errorf("expected product %d, got %+v", bujeID, byID)
	}

	// OE code matches case-insensitively.
	byOE, err := FindProduct(ctx, database, "oe123")
	if err != nil {
		t.Fatalf("FindProduct by OE: %v", err)
	}
	if byOE == nil || byOE.OECode != "OE123" {
		t.Errorf("expected OE123, got %+v", byOE)
	}

	// Name substring, case-insensitive.
	byName, err := FindProduct(ctx, database, "BUJE")
	if err != nil {
		t.Fatalf("FindProduct by name: %v", err)
	}
	if byName == nil || byName.ID != bujeID {
		t.Errorf("expected buje product, got %+v", byName)
	}

	// No match.
	none, err := FindProduct(ctx, database, "radiador")
	if err != nil {
		t.Fatalf("FindProduct no match: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil, got %+v", none)
	}
}

func TestFindProductNumericQueryFallsThrough(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// OE code that is purely numeric, with no product at that id.
	store.CreateProduct(ctx, database, testProduct("Sensor", "4491"))

	view, err := FindProduct(ctx, database, "4491")
	if err != nil {
		t.Fatalf("FindProduct: %v", err)
	}
	if view == nil || view.OECode != "4491" {
		t.Errorf("expected OE match after id miss, got %+v", view)
	}
}
