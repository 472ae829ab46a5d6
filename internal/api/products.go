package api

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dmolina/recambios/internal/catalog"
	"github.com/dmolina/recambios/internal/model"
)

// maxProductForm bounds the in-memory part of multipart parsing; larger file
// parts spill to temp files.
const maxProductForm = 32 << 20

// ProductsHandler handles product endpoints.
type ProductsHandler struct {
	DB         *sql.DB
	UploadsDir string
}

// List handles GET /products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := catalog.ListProductViews(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if views == nil {
		views = []model.ProductView{}
	}
	jsonResponse(w, http.StatusOK, views)
}

// Get handles GET /products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	view, err := catalog.GetProductView(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if view == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Find handles GET /products/find?q=. The query resolves by id, then OE
// code, then name substring.
func (h *ProductsHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, http.StatusBadRequest, "query parameter q required")
		return
	}

	view, err := catalog.FindProduct(r.Context(), h.DB, query)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to search products")
		return
	}
	if view == nil {
		jsonError(w, http.StatusNotFound, "no matching product")
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Create handles POST /products: a multipart form with the product's scalar
// fields and zero or more file parts under "images".
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProductForm); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	product, err := productFromForm(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var images []catalog.ImageUpload
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			images = append(images, catalog.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Open:        func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
	}

	report, err := catalog.CreateProduct(r.Context(), h.DB, h.UploadsDir, product, images)
	if err != nil {
		var verr *catalog.ValidationError
		switch {
		case errors.As(err, &verr):
			jsonError(w, http.StatusBadRequest, verr.Reason)
		case errors.Is(err, catalog.ErrDuplicateReference):
			jsonError(w, http.StatusBadRequest, "a product with this OE reference already exists")
		default:
			jsonError(w, http.StatusInternalServerError, "failed to save product")
		}
		return
	}

	saved := report.Saved
	if saved == nil {
		saved = []string{}
	}
	skipped := report.Skipped
	if skipped == nil {
		skipped = []catalog.SkippedImage{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "product saved",
		"product_id":   report.ProductID,
		"images":       saved,
		"total_images": len(saved),
		"skipped":      skipped,
	})
}

// productFromForm maps the multipart form fields onto a product. Numeric
// fields must parse; absent values default to zero.
func productFromForm(r *http.Request) (*model.Product, error) {
	p := &model.Product{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		Brand:            r.FormValue("brand"),
		OECode:           r.FormValue("oe_code"),
		SupplierCode:     r.FormValue("supplier_code"),
		PackageCode:      r.FormValue("package_code"),
		Barcode:          r.FormValue("barcode"),
		CategoryCode:     r.FormValue("category_code"),
		Side:             r.FormValue("side"),
		Unit:             r.FormValue("unit"),
		TariffCode:       r.FormValue("tariff_code"),
		Capacity:         r.FormValue("capacity"),
		Tags:             r.FormValue("tags"),
		DirectReferences: r.FormValue("direct_references"),
		PublicInfo:       r.FormValue("public_info"),
		ReservedInfo:     r.FormValue("reserved_info"),
	}

	if v := r.FormValue("weight"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.New("invalid weight")
		}
		p.Weight = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	var err error
	if p.StockAccounting, err = formInt(r, "stock_accounting"); err != nil {
		return nil, errors.New("invalid stock_accounting")
	}
	if p.StockPhysical, err = formInt(r, "stock_physical"); err != nil {
		return nil, errors.New("invalid stock_physical")
	}

	return p, nil
}

func formInt(r *http.Request, field string) (int, error) {
	v := r.FormValue(field)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
