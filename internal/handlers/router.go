package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/blackgoldunited/bguerp/internal/auth"
	"github.com/blackgoldunited/bguerp/internal/buildinfo"
	"github.com/blackgoldunited/bguerp/internal/config"
	"github.com/blackgoldunited/bguerp/internal/database"
	"github.com/blackgoldunited/bguerp/internal/middleware"
	"github.com/blackgoldunited/bguerp/internal/services/activity"
	"github.com/blackgoldunited/bguerp/internal/services/approval"
	"github.com/blackgoldunited/bguerp/internal/websocket"
)

// Router wraps the mux router, the database and the services the
// handlers depend on
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	auth     *middleware.Authenticator
	workflow *approval.Workflow
	activity *activity.Logger
	hub      *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config) *Router {
	hub := websocket.NewHub()
	go hub.Run()

	r := &Router{
		Router:   mux.NewRouter(),
		db:       db,
		cfg:      cfg,
		auth:     middleware.NewAuthenticator(cfg.JWTSecret),
		workflow: approval.NewWorkflow(db.DB, approval.LoadPolicy(db.DB)),
		activity: activity.NewLogger(db.DB, hub),
		hub:      hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")
	r.HandleFunc("/api/status", r.getStatus).Methods("GET")

	// Auth routes
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/login", r.login).Methods("POST")
	authRoutes.HandleFunc("/register", r.register).Methods("POST")
	authRoutes.HandleFunc("/logout", r.logout).Methods("POST")
	authRoutes.Handle("/me", r.auth.Authenticate(http.HandlerFunc(r.me))).Methods("GET")

	// Client routes
	clients := r.PathPrefix("/api/clients").Subrouter()
	clients.HandleFunc("", r.auth.RequireModule(auth.ModuleClients, r.listClients)).Methods("GET")
	clients.HandleFunc("", r.auth.RequireModule(auth.ModuleClients, r.createClient)).Methods("POST")
	clients.HandleFunc("/{id}", r.auth.RequireModule(auth.ModuleClients, r.getClient)).Methods("GET")
	clients.HandleFunc("/{id}", r.auth.RequireModule(auth.ModuleClients, r.updateClient)).Methods("PUT")
	clients.HandleFunc("/{id}", r.auth.RequireModule(auth.ModuleClients, r.deleteClient)).Methods("DELETE")

	// Purchasing routes
	purchase := r.PathPrefix("/api/purchase").Subrouter()
	purchase.HandleFunc("/suppliers", r.auth.RequireModule(auth.ModulePurchase, r.listSuppliers)).Methods("GET")
	purchase.HandleFunc("/suppliers", r.auth.RequireModule(auth.ModulePurchase, r.createSupplier)).Methods("POST")
	purchase.HandleFunc("/suppliers/{id}", r.auth.RequireModule(auth.ModulePurchase, r.getSupplier)).Methods("GET")
	purchase.HandleFunc("/suppliers/{id}", r.auth.RequireModule(auth.ModulePurchase, r.updateSupplier)).Methods("PUT")
	purchase.HandleFunc("/suppliers/{id}", r.auth.RequireModule(auth.ModulePurchase, r.deleteSupplier)).Methods("DELETE")
	purchase.HandleFunc("/orders", r.auth.RequireModule(auth.ModulePurchase, r.listPurchaseOrders)).Methods("GET")
	purchase.HandleFunc("/orders", r.auth.RequireModule(auth.ModulePurchase, r.createPurchaseOrder)).Methods("POST")
	purchase.HandleFunc("/orders/{id}", r.auth.RequireModule(auth.ModulePurchase, r.getPurchaseOrder)).Methods("GET")
	purchase.HandleFunc("/orders/{id}", r.auth.RequireModule(auth.ModulePurchase, r.updatePurchaseOrderStatus)).Methods("PUT")
	purchase.HandleFunc("/stats", r.auth.RequireModule(auth.ModulePurchase, r.purchaseStats)).Methods("GET")

	// Inventory routes
	inventory := r.PathPrefix("/api/inventory").Subrouter()
	inventory.HandleFunc("/products", r.auth.RequireModule(auth.ModuleInventory, r.listProducts)).Methods("GET")
	inventory.HandleFunc("/products", r.auth.RequireModule(auth.ModuleInventory, r.createProduct)).Methods("POST")
	inventory.HandleFunc("/products/{id}", r.auth.RequireModule(auth.ModuleInventory, r.getProduct)).Methods("GET")
	inventory.HandleFunc("/products/{id}", r.auth.RequireModule(auth.ModuleInventory, r.updateProduct)).Methods("PUT")
	inventory.HandleFunc("/products/{id}", r.auth.RequireModule(auth.ModuleInventory, r.deleteProduct)).Methods("DELETE")
	inventory.HandleFunc("/warehouses", r.auth.RequireModule(auth.ModuleInventory, r.listWarehouses)).Methods("GET")
	inventory.HandleFunc("/warehouses", r.auth.RequireModule(auth.ModuleInventory, r.createWarehouse)).Methods("POST")
	inventory.HandleFunc("/movements", r.auth.RequireModule(auth.ModuleInventory, r.listMovements)).Methods("GET")
	inventory.HandleFunc("/movements", r.auth.RequireModule(auth.ModuleInventory, r.createMovement)).Methods("POST")
	inventory.HandleFunc("/stock", r.auth.RequireModule(auth.ModuleInventory, r.stockLevels)).Methods("GET")

	// Sales routes
	sales := r.PathPrefix("/api/sales").Subrouter()
	sales.HandleFunc("/invoices", r.auth.RequireModule(auth.ModuleSales, r.listInvoices)).Methods("GET")
	sales.HandleFunc("/invoices", r.auth.RequireModule(auth.ModuleSales, r.createInvoice)).Methods("POST")
	sales.HandleFunc("/invoices/{id}", r.auth.RequireModule(auth.ModuleSales, r.getInvoice)).Methods("GET")
	sales.HandleFunc("/invoices/{id}", r.auth.RequireModule(auth.ModuleSales, r.updateInvoice)).Methods("PUT")
	sales.HandleFunc("/invoices/{id}", r.auth.RequireModule(auth.ModuleSales, r.deleteInvoice)).Methods("DELETE")
	sales.HandleFunc("/invoices/{id}/pdf", r.auth.RequireModule(auth.ModuleSales, r.invoicePDF)).Methods("GET")

	// Document routes (approvals before the {id} wildcard)
	documents := r.PathPrefix("/api/documents").Subrouter()
	documents.HandleFunc("/approvals", r.auth.RequireModule(auth.ModuleDocuments, r.listApprovals)).Methods("GET")
	documents.HandleFunc("/approvals", r.auth.RequireModule(auth.ModuleDocuments, r.submitApproval)).Methods("POST")
	documents.HandleFunc("", r.auth.RequireModule(auth.ModuleDocuments, r.listDocuments)).Methods("GET")
	documents.HandleFunc("", r.auth.RequireModule(auth.ModuleDocuments, r.createDocument)).Methods("POST")
	documents.HandleFunc("/{id}", r.auth.RequireModule(auth.ModuleDocuments, r.getDocument)).Methods("GET")
	documents.HandleFunc("/{id}", r.auth.RequireModule(auth.ModuleDocuments, r.updateDocument)).Methods("PUT")
	documents.HandleFunc("/{id}", r.auth.RequireModule(auth.ModuleDocuments, r.deleteDocument)).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard/stats", r.auth.RequireModule(auth.ModuleReports, r.dashboardStats)).Methods("GET")

	// Notification stream
	r.HandleFunc("/ws/notifications", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(r.hub, w, req)
	})

	return r
}

// Handler returns the root http.Handler
func (r *Router) Handler() http.Handler {
	return r.Router
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
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
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

// pagination reads page/limit query parameters with the API defaults
func pagination(req *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(req.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
