package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmolina/recambios/internal/api"
	"github.com/dmolina/recambios/internal/catalog"
	"github.com/dmolina/recambios/internal/db"
	"github.com/dmolina/recambios/internal/store"
)

func main() {
	// Optional .env for local setups; real deployments set the variables
	// directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	dbPath := flag.String("db", envOr("RECAMBIOS_DB", "recambios.sqlite3"), "path to SQLite database file")
	addr := flag.String("addr", envOr("RECAMBIOS_ADDR", ":8080"), "listen address")
	uploadsDir := flag.String("uploads", envOr("RECAMBIOS_UPLOADS", "uploads"), "directory for uploaded product images")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	database, err := db.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	// First run: provision the admin account with a generated password,
	// printed once. Accounts are never managed through the API.
	userCount, err := store.CountUsers(context.Background(), database)
	if err != nil {
		slog.Error("failed to count users", "error", err)
		os.Exit(1)
	}
	if userCount == 0 {
		if err := createAdmin(database); err != nil {
			slog.Error("failed to create admin account", "error", err)
			os.Exit(1)
		}
	}

	if err := os.MkdirAll(filepath.Join(*uploadsDir, catalog.ProductImagesDir), 0o755); err != nil {
		slog.Error("failed to create uploads directory", "error", err)
		os.Exit(1)
	}

	// Signing secret lives in the database, generated on first use, so
	// tokens survive restarts.
	jwtSecret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/", api.NewRouter(database, jwtSecret, *uploadsDir))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(*uploadsDir))))

	server := &http.Server{
		Addr:              *addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", *addr, "db", *dbPath, "uploads", *uploadsDir)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// createAdmin provisions the admin account with a generated password.
func createAdmin(database *sql.DB) error {
	email := envOr("ADMIN_EMAIL", "admin@taller.local")
	name := envOr("ADMIN_NAME", "Administrador")

	password, err := generatePassword(16)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if _, err := store.CreateUser(context.Background(), database, email, name, string(hash)); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	fmt.Println("Admin account created:")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password; it cannot be recovered.")
	return nil
}

// envOr returns the environment variable value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
