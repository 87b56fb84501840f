// Package server exposes the services over JSON HTTP. Everything here is
// adaptation: decoding requests, translating domain errors to status
// codes, and shaping the response envelope. No split or settlement rule
// lives in this package.
package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/service"
	"github.com/splittab/splittab/internal/storage"
)

// Server wires the services into an http.Handler.
type Server struct {
	expenses *service.ExpenseService
	reports  *service.ReportService
	users    *service.UserService
	validate *validator.Validate
	router   *mux.Router
}

// New creates a Server over the given store and registers all routes.
func New(store storage.Store) *Server {
	s := &Server{
		expenses: service.NewExpenseService(store),
		reports:  service.NewReportService(store),
		users:    service.NewUserService(store),
		validate: validator.New(),
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Logging, middleware.CORS, middleware.Metrics)

	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", s.handleRegisterUser).Methods(http.MethodPost)
	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)

	api.HandleFunc("/expenses", s.handleListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id}", s.handleGetExpense).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", s.handleUpdateExpense).Methods(http.MethodPut)
	api.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods(http.MethodDelete)

	api.HandleFunc("/settlements", s.handleListSettlements).Methods(http.MethodGet)
	api.HandleFunc("/balances", s.handleBalances).Methods(http.MethodGet)
	api.HandleFunc("/people", s.handlePeople).Methods(http.MethodGet)
	api.HandleFunc("/categories/summary", s.handleCategorySummary).Methods(http.MethodGet)
	api.HandleFunc("/analytics/monthly", s.handleMonthlySummary).Methods(http.MethodGet)
	api.HandleFunc("/analytics/user-spending", s.handleUserSpending).Methods(http.MethodGet)
	api.HandleFunc("/analytics/top-expenses", s.handleTopExpenses).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "service healthy")
}
