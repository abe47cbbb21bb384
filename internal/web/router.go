package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockcast/internal/metrics"
	"stockcast/internal/session"
	"stockcast/internal/web/handlers"
	"stockcast/pkg/config"
	"stockcast/pkg/logger"
)

// NewRouter creates and configures the HTTP router. All routing lives here.
func NewRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	feedbackHandler *handlers.FeedbackHandler,
	adminHandler *handlers.AdminHandler,
	sessions session.Store,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}).Methods("GET")

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	r.HandleFunc("/register", authHandler.ShowRegister).Methods("GET")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.ShowLogin).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// The statistics view is deliberately left outside the session gate.
	r.HandleFunc("/admin", adminHandler.Show).Methods("GET")

	if cfg.MetricsEnabled {
		metrics.Register()
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
		r.Use(metricsMiddleware())
	}

	// Authenticated routes
	gated := r.NewRoute().Subrouter()
	gated.Use(RequireSession(sessions, log))
	gated.HandleFunc("/dashboard", dashboardHandler.Show).Methods("GET")
	gated.HandleFunc("/dashboard", dashboardHandler.Predict).Methods("POST")
	gated.HandleFunc("/feedback", feedbackHandler.Show).Methods("GET")
	gated.HandleFunc("/feedback", feedbackHandler.Submit).Methods("POST")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "stockcast",
	})
}
