package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/dmolina/recambios/internal/model"
	"github.com/dmolina/recambios/internal/store"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	DB *sql.DB
}

type createCategoryRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List handles GET /categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := store.ListCategories(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Create handles POST /categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Code == "" || req.Name == "" {
		jsonError(w, http.StatusBadRequest, "category code and name are required")
		return
	}
	if len(req.Code) > model.CategoryCodeMaxLen {
		jsonError(w, http.StatusBadRequest, "category code cannot be longer than 6 characters")
		return
	}

	err := store.CreateCategory(r.Context(), h.DB, req.Code, req.Name, req.Description)
	if errors.Is(err, store.ErrDuplicate) {
		jsonError(w, http.StatusBadRequest, "a category with this code already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "category created",
	})
}
