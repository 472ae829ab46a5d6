package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry for a vehicle part. OECode is the original
// equipment manufacturer reference and is unique across the whole catalog.
type Product struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	Brand            string              `json:"brand,omitempty"`
	OECode           string              `json:"oe_code"`
	SupplierCode     string              `json:"supplier_code,omitempty"`
	PackageCode      string              `json:"package_code,omitempty"`
	Barcode          string              `json:"barcode,omitempty"`
	CategoryCode     string              `json:"category_code,omitempty"`
	Side             string              `json:"side"`
	Unit             string              `json:"unit,omitempty"`
	Weight           decimal.NullDecimal `json:"weight"`
	TariffCode       string              `json:"tariff_code,omitempty"`
	Capacity         string              `json:"capacity,omitempty"`
	Tags             string              `json:"tags,omitempty"`
	DirectReferences string              `json:"direct_references,omitempty"`
	PublicInfo       string              `json:"public_info,omitempty"`
	ReservedInfo     string              `json:"reserved_info,omitempty"`
	StockAccounting  int                 `json:"stock_accounting"`
	StockPhysical    int                 `json:"stock_physical"`
	CreatedAt        time.Time           `json:"created_at"`
}

// Sides a part can fit.
const (
	SideLeft  = "left"
	SideRight = "right"
	SideBoth  = "both"
	SideNA    = "n/a"
)

// ValidSide reports whether side is one of the known side values.
func ValidSide(side string) bool {
	switch side {
	case SideLeft, SideRight, SideBoth, SideNA:
		return true
	}
	return false
}

// ProductImage is a stored image attached to a product. Position is the
// 0-based index of the blob in the upload that created it; the image
// submitted first is flagged primary and that flag never changes.
type ProductImage struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Path      string    `json:"path"`
	Position  int       `json:"position"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductView is the denormalized read projection used by listings and the
// product profile page: the product joined with its category name and the
// ordered set of image paths.
type ProductView struct {
	Product
	CategoryName string   `json:"category_name,omitempty"`
	PrimaryImage string   `json:"primary_image,omitempty"`
	Images       []string `json:"images"`
}
