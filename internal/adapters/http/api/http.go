// Package api declares the widget HTTP contracts and route registration.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Server wires HTTP routes for widgets, health and stats.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	widgetHandler *WidgetHandler
}

// NewServer creates an API server with all handlers.
func NewServer(statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		widgetHandler: NewWidgetHandler(),
	}
}

// Register attaches all API routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/widgets/gauge", MetricsMiddleware(s.widgetHandler.HandleGauge, "gauge"))
	mux.HandleFunc("/widgets/progress", MetricsMiddleware(s.widgetHandler.HandleProgress, "progress"))
	mux.HandleFunc("/widgets/table", MetricsMiddleware(s.widgetHandler.HandleTable, "table"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
