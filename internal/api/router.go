package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered. Everything
// except login requires a valid bearer token.
func NewRouter(db *sql.DB, jwtSecret, uploadsDir string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	categoriesHandler := &CategoriesHandler{DB: db}
	productsHandler := &ProductsHandler{DB: db, UploadsDir: uploadsDir}

	authMW := AuthMiddleware(jwtSecret)

	// Public: login.
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// Categories.
	mux.Handle("GET /categories", authMW(http.HandlerFunc(categoriesHandler.List)))
	mux.Handle("POST /categories", authMW(http.HandlerFunc(categoriesHandler.Create)))

	// Products. /products/find is more specific than /products/{id} and
	// takes precedence in the mux.
	mux.Handle("GET /products", authMW(http.HandlerFunc(productsHandler.List)))
	mux.Handle("POST /products", authMW(http.HandlerFunc(productsHandler.Create)))
	mux.Handle("GET /products/find", authMW(http.HandlerFunc(productsHandler.Find)))
	mux.Handle("GET /products/{id}", authMW(http.HandlerFunc(productsHandler.Get)))

	return mux
}
