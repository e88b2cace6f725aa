package http

import (
	"net/http"

	"freight-backend/internal/handlers"
	"freight-backend/internal/middleware"
	"freight-backend/internal/notify"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	shipmentHandler *handlers.ShipmentHandler,
	tripHandler *handlers.TripHandler,
	expenseHandler *handlers.ExpenseHandler,
	trashHandler *handlers.TrashHandler,
	reportHandler *handlers.ReportHandler,
	shippingRequestHandler *handlers.RemoteHandler,
	warehouseHandler *handlers.RemoteHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	hub *notify.Hub,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/healthz", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/ws/changes", hub.WSHandler)

	// Shipments
	shipmentsAPI := r.PathPrefix("/api/shipments").Subrouter()
	shipmentsAPI.Use(authMiddleware.Authenticate)
	shipmentsAPI.HandleFunc("", shipmentHandler.List).Methods("GET")
	shipmentsAPI.HandleFunc("", shipmentHandler.Create).Methods("POST")
	shipmentsAPI.HandleFunc("/{id}", shipmentHandler.Get).Methods("GET")
	shipmentsAPI.HandleFunc("/{id}", shipmentHandler.Update).Methods("PUT")
	shipmentsAPI.HandleFunc("/{id}", shipmentHandler.Delete).Methods("DELETE")
	shipmentsAPI.HandleFunc("/{id}/status", shipmentHandler.UpdateStatus).Methods("PATCH")

	// Trips
	tripsAPI := r.PathPrefix("/api/trips").Subrouter()
	tripsAPI.Use(authMiddleware.Authenticate)
	tripsAPI.HandleFunc("", tripHandler.List).Methods("GET")
	tripsAPI.HandleFunc("", tripHandler.Create).Methods("POST")
	tripsAPI.HandleFunc("/available-shipments", tripHandler.AvailableShipments).Methods("GET")
	tripsAPI.HandleFunc("/{id}", tripHandler.Get).Methods("GET")
	tripsAPI.HandleFunc("/{id}", tripHandler.Update).Methods("PUT")
	tripsAPI.HandleFunc("/{id}", tripHandler.Delete).Methods("DELETE")

	// Expenses and purchases
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.List).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.Create).Methods("POST")
	expensesAPI.HandleFunc("/categories", expenseHandler.Categories).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.Delete).Methods("DELETE")

	// Trash (soft-deleted shipments and trips)
	trashAPI := r.PathPrefix("/api/trash").Subrouter()
	trashAPI.Use(authMiddleware.Authenticate)
	trashAPI.HandleFunc("/{kind}", trashHandler.List).Methods("GET")
	trashAPI.HandleFunc("/{kind}/{id}/restore", trashHandler.Restore).Methods("POST")
	trashAPI.HandleFunc("/{kind}/{id}", trashHandler.Purge).Methods("DELETE")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/budget", reportHandler.Budget).Methods("GET")
	reportsAPI.HandleFunc("/budget/csv", reportHandler.BudgetCSV).Methods("GET")
	reportsAPI.HandleFunc("/budget/pdf", reportHandler.BudgetPDF).Methods("GET")

	// Remote tables
	registerRemote(r, "/api/shipping-requests", shippingRequestHandler, authMiddleware)
	registerRemote(r, "/api/warehouse-items", warehouseHandler, authMiddleware)

	// Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.List)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.Create)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.Delete)).ServeHTTP).Methods("DELETE")

	return r
}

func registerRemote(r *mux.Router, prefix string, handler *handlers.RemoteHandler, authMiddleware *middleware.AuthMiddleware) {
	api := r.PathPrefix(prefix).Subrouter()
	api.Use(authMiddleware.Authenticate)
	api.HandleFunc("", handler.List).Methods("GET")
	api.HandleFunc("", handler.Create).Methods("POST")
	api.HandleFunc("/{id}", handler.Get).Methods("GET")
	api.HandleFunc("/{id}", handler.Update).Methods("PUT")
	api.HandleFunc("/{id}", handler.Delete).Methods("DELETE")
}
