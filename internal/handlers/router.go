package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/eckrecongo/internal/assets"
	"github.com/xelth-com/eckrecongo/internal/config"
	"github.com/xelth-com/eckrecongo/internal/database"
	"github.com/xelth-com/eckrecongo/internal/middleware"
	"github.com/xelth-com/eckrecongo/internal/notify"
	"github.com/xelth-com/eckrecongo/internal/reconcile"
)

// Router wraps the mux router and the engine services
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	hub      *notify.Hub
	recon    *reconcile.Service
	assetSvc *assets.Service
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *notify.Hub) *Router {
	r := &Router{
		Router:   mux.NewRouter(),
		db:       db,
		cfg:      cfg,
		hub:      hub,
		recon:    reconcile.NewService(db.DB, hub),
		assetSvc: assets.NewService(db.DB, hub),
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// Notification websocket (dashboards, handhelds)
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		notify.ServeWs(hub, w, req)
	})

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	// Reconciliation sessions
	api.HandleFunc("/sessions", r.listSessions).Methods("GET")
	api.HandleFunc("/sessions", r.createSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", r.getSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", r.deleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/complete", r.completeSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/items/{itemId}/scans", r.recordScan).Methods("POST")
	api.HandleFunc("/sessions/{id}/items/{itemId}/scans/{scanId}", r.removeScan).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/sheet", r.printSessionSheet).Methods("GET")

	// Shipments / deliveries / assets
	api.HandleFunc("/shipments", r.createShipment).Methods("POST")
	api.HandleFunc("/shipments/{id}/assets", r.addAssetToShipment).Methods("POST")
	api.HandleFunc("/shipments/{id}/ship", r.markShipmentShipped).Methods("POST")
	api.HandleFunc("/deliveries/{id}/deliver", r.markDeliveryDelivered).Methods("POST")
	api.HandleFunc("/assets", r.listAssets).Methods("GET")
	api.HandleFunc("/assets/{id}", r.getAsset).Methods("GET")
	api.HandleFunc("/assets/{id}/install", r.confirmInstalled).Methods("POST")
	api.HandleFunc("/assets/{id}/writeoff", r.writeOffAsset).Methods("POST")
	api.HandleFunc("/assets/{id}/label", r.printAssetLabel).Methods("GET")

	// Directory reads (thin wrappers, no engine logic)
	api.HandleFunc("/warehouses", r.listWarehouses).Methods("GET")
	api.HandleFunc("/stores", r.listStores).Methods("GET")
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/stock", r.listStock).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
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

// respondServiceError maps engine errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reconcile.ErrNotFound), errors.Is(err, assets.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, reconcile.ErrSessionFinalized), errors.Is(err, assets.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, reconcile.ErrNothingToShip):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
