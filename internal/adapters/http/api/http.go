// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	WinsFor(ctx context.Context, entity string) model.WinsResult
	ResultFor(ctx context.Context, year int) model.ResultLookup
	Choropleth(ctx context.Context) types.Choropleth
	Selections(ctx context.Context) model.Selections
	Dashboard(ctx context.Context) types.Dashboard

	// Display text for the lookups.
	DescribeWins(r model.WinsResult) string
	DescribeResult(r model.ResultLookup) string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	winsHandler       *WinsHandler
	resultsHandler    *ResultsHandler
	choroplethHandler *ChoroplethHandler
	selectionsHandler *SelectionsHandler
	dashboardHandler  *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		winsHandler:       NewWinsHandler(deps),
		resultsHandler:    NewResultsHandler(deps),
		choroplethHandler: NewChoroplethHandler(deps),
		selectionsHandler: NewSelectionsHandler(deps),
		dashboardHandler:  NewDashboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/selections", MetricsMiddleware(s.selectionsHandler.HandleGetSelections, "selections"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard"))
	mux.HandleFunc("/choropleth", MetricsMiddleware(s.choroplethHandler.HandleGetChoropleth, "choropleth"))
	mux.HandleFunc("/wins/", MetricsMiddleware(s.winsHandler.HandleGetWins, "wins"))
	mux.HandleFunc("/results/", MetricsMiddleware(s.resultsHandler.HandleGetResult, "results"))
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
