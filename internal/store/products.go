package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmolina/recambios/internal/model"
)

// productColumns is the column list shared by every product SELECT.
const productColumns = `id, name, description, brand, oe_code, supplier_code, package_code,
	barcode, category_code, side, unit, weight, tariff_code, capacity, tags,
	direct_references, public_info, reserved_info, stock_accounting, stock_physical, created_at`

// CreateProduct inserts a product row and returns its assigned ID. A clash on
// the OE code surfaces as ErrDuplicate with nothing written.
func CreateProduct(ctx context.Context, db *sql.DB, p *model.Product) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO products (name, description, brand, oe_code, supplier_code, package_code,
		 barcode, category_code, side, unit, weight, tariff_code, capacity, tags,
		 direct_references, public_info, reserved_info, stock_accounting, stock_physical)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Brand), p.OECode,
		nullIfEmpty(p.SupplierCode), nullIfEmpty(p.PackageCode), nullIfEmpty(p.Barcode),
		nullIfEmpty(p.CategoryCode), p.Side, nullIfEmpty(p.Unit), p.Weight,
		nullIfEmpty(p.TariffCode), nullIfEmpty(p.Capacity), nullIfEmpty(p.Tags),
		nullIfEmpty(p.DirectReferences), nullIfEmpty(p.PublicInfo), nullIfEmpty(p.ReservedInfo),
		p.StockAccounting, p.StockPhysical,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("creating product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting product id: %w", err)
	}
	return id, nil
}

// GetProduct returns a product by ID.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return p, nil
}

// GetProductByOE returns a product by exact OE code match.
func GetProductByOE(ctx context.Context, db *sql.DB, oeCode string) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE oe_code = ?`, oeCode)
	p, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product by oe code: %w", err)
	}
	return p, nil
}

// ListProducts returns all products, newest first.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// ProductWithCategory pairs a product with its resolved category display
// name. Name is empty when the product has no code or the code matches no
// category.
type ProductWithCategory struct {
	model.Product
	CategoryName string
}

// ListProductsWithCategory returns all products newest first, each with its
// category name resolved through a left join.
func ListProductsWithCategory(ctx context.Context, db *sql.DB) ([]ProductWithCategory, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT p.id, p.name, p.description, p.brand, p.oe_code, p.supplier_code,
		        p.package_code, p.barcode, p.category_code, p.side, p.unit, p.weight,
		        p.tariff_code, p.capacity, p.tags, p.direct_references, p.public_info,
		        p.reserved_info, p.stock_accounting, p.stock_physical, p.created_at,
		        c.name AS category_name
		 FROM products p
		 LEFT JOIN categories c ON c.code = p.category_code
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing products with categories: %w", err)
	}
	defer rows.Close()

	var products []ProductWithCategory
	for rows.Next() {
		var pc ProductWithCategory
		var categoryName sql.NullString
		p, err := scanProduct(func(dest ...any) error {
			return rows.Scan(append(dest, &categoryName)...)
		})
		if err != nil {
			return nil, fmt.Errorf("scanning product with category: %w", err)
		}
		pc.Product = *p
		pc.CategoryName = categoryName.String
		products = append(products, pc)
	}
	return products, rows.Err()
}

// scanProduct scans one row in productColumns order.
func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	p := &model.Product{}
	var description, brand, supplierCode, packageCode, barcode, categoryCode,
		unit, tariffCode, capacity, tags, directRefs, publicInfo, reservedInfo sql.NullString

	err := scan(&p.ID, &p.Name, &description, &brand, &p.OECode, &supplierCode,
		&packageCode, &barcode, &categoryCode, &p.Side, &unit, &p.Weight,
		&tariffCode, &capacity, &tags, &directRefs, &publicInfo, &reservedInfo,
		&p.StockAccounting, &p.StockPhysical, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	p.Brand = brand.String
	p.SupplierCode = supplierCode.String
	p.PackageCode = packageCode.String
	p.Barcode = barcode.String
	p.CategoryCode = categoryCode.String
	p.Unit = unit.String
	p.TariffCode = tariffCode.String
	p.Capacity = capacity.String
	p.Tags = tags.String
	p.DirectReferences = directRefs.String
	p.PublicInfo = publicInfo.String
	p.ReservedInfo = reservedInfo.String
	return p, nil
}
