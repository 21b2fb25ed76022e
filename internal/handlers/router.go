package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/davebaumann/whoptix-saas-sub000/internal/config"
	"github.com/davebaumann/whoptix-saas-sub000/internal/database"
	"github.com/davebaumann/whoptix-saas-sub000/internal/middleware"
	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
	syncsvc "github.com/davebaumann/whoptix-saas-sub000/internal/sync"
	"github.com/davebaumann/whoptix-saas-sub000/internal/websocket"
)

// Router wraps the mux router with the service dependencies handlers need.
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	syncSvc  *syncsvc.Service
	skuVault *skuvault.Client
	hub      *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, syncSvc *syncsvc.Service, sv *skuvault.Client, hub *websocket.Hub) *Router {
	r := &Router{
		Router:   mux.NewRouter(),
		db:       db,
		cfg:      cfg,
		syncSvc:  syncSvc,
		skuVault: sv,
		hub:      hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	authed := middleware.Auth(cfg.JWTSecret)
	auth.Handle("/me", authed(http.HandlerFunc(r.me))).Methods("GET")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authed)
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Mirrored data queries (customer-scoped)
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/locations", r.listLocations).Methods("GET")
	api.HandleFunc("/inventory", r.listInventory).Methods("GET")
	api.HandleFunc("/movements", r.listMovements).Methods("GET")
	api.HandleFunc("/transactions", r.listTransactions).Methods("GET")

	// Sync triggers
	api.HandleFunc("/sync/all", r.triggerFleetSync).Methods("POST")
	api.HandleFunc("/sync/status", r.getSyncStatus).Methods("GET")
	api.HandleFunc("/sync/customers/{id:[0-9]+}", r.syncCustomer).Methods("POST")
	api.HandleFunc("/sync/customers/{id:[0-9]+}/{entity}", r.syncCustomerEntity).Methods("POST")

	// Reports (membership-gated inside the handler)
	api.HandleFunc("/reports", r.listReports).Methods("GET")
	api.HandleFunc("/reports/{name}", r.getReport).Methods("GET")

	// Label printing
	api.HandleFunc("/labels", r.printLabels).Methods("POST")

	// Admin routes
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(authed, middleware.RequireRole("admin"))
	admin.HandleFunc("/customers", r.listCustomers).Methods("GET")
	admin.HandleFunc("/customers", r.createCustomer).Methods("POST")
	admin.HandleFunc("/customers/{id:[0-9]+}", r.getCustomer).Methods("GET")
	admin.HandleFunc("/customers/{id:[0-9]+}", r.deleteCustomer).Methods("DELETE")
	admin.HandleFunc("/customers/{id:[0-9]+}/membership", r.updateMembership).Methods("PUT")
	admin.HandleFunc("/tenants", r.listTenants).Methods("GET")
	admin.HandleFunc("/tenants", r.createTenant).Methods("POST")
	admin.HandleFunc("/tenants/{id:[0-9]+}", r.deleteTenant).Methods("DELETE")
	admin.HandleFunc("/tenants/{id:[0-9]+}/credentials", r.exchangeCredentials).Methods("POST")

	// Dashboard live updates
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(hub, w, req)
	})

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"version": "1.0.0",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondSyncError maps sync failures so operators can tell "SkuVault is
// down" (502) apart from an internal fault (500).
func respondSyncError(w http.ResponseWriter, err error) {
	if errors.Is(err, skuvault.ErrUnavailable) {
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error":    err.Error(),
			"category": "upstream_error",
		})
		return
	}
	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"error":    err.Error(),
		"category": "internal_error",
	})
}

// customerScope resolves which customer's rows a request may touch: the
// customerId claim for dashboard users, or an explicit ?customerId= for
// admins.
func (r *Router) customerScope(req *http.Request) (uint, bool) {
	claims, ok := middleware.ClaimsFrom(req)
	if !ok {
		return 0, false
	}
	if claims["role"] == "admin" {
		if v := req.URL.Query().Get("customerId"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				return uint(id), true
			}
		}
	}
	if v, ok := claims["customerId"].(float64); ok && v > 0 {
		return uint(v), true
	}
	return 0, false
}

// pagination reads limit/offset query params with sane bounds.
func pagination(req *http.Request) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(req.URL.Query().Get("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	if v, err := strconv.Atoi(req.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
