package router

import (
	"net/http"
	"strings"

	"fresh-kart/internal/auth"
	"fresh-kart/internal/handler"
	"fresh-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Catalogue reads, order submission, and order detail are public; catalogue
// mutations and order management need an admin session cookie.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	authMgr *auth.Manager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	adminOnly := middleware.RequireAdmin(authMgr, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product routes: collection and item, dispatched on method
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		itemPath := r.URL.Path != "/api/products" && r.URL.Path != "/api/products/"

		switch {
		case r.Method == http.MethodGet && itemPath:
			productHandler.GetByID(w, r)
		case r.Method == http.MethodGet:
			productHandler.GetAll(w, r)
		case r.Method == http.MethodPost && !itemPath:
			adminOnly(productHandler.Create)(w, r)
		case r.Method == http.MethodPut && itemPath:
			adminOnly(productHandler.Update)(w, r)
		case r.Method == http.MethodDelete && itemPath:
			adminOnly(productHandler.Delete)(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Order routes: submission and detail are public, management is admin-only
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		itemPath := strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/"

		switch {
		case r.Method == http.MethodPost && !itemPath:
			orderHandler.Create(w, r)
		case r.Method == http.MethodGet && itemPath:
			orderHandler.GetByID(w, r)
		case r.Method == http.MethodGet:
			adminOnly(orderHandler.List)(w, r)
		case r.Method == http.MethodPut && itemPath:
			adminOnly(orderHandler.UpdateStatus)(w, r)
		case r.Method == http.MethodDelete && itemPath:
			adminOnly(orderHandler.Delete)(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Admin session routes
	mux.HandleFunc("/api/admin/login", adminHandler.Login)
	mux.HandleFunc("/api/admin/check-auth", adminHandler.CheckAuth)
	mux.HandleFunc("/api/admin/logout", adminHandler.Logout)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
