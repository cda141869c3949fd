package api

import (
	"context"
	"net/http"

	"github.com/okian/finals/internal/domain/types"
)

// DashboardDependencies defines the interface for the localized page text.
type DashboardDependencies interface {
	Dashboard(ctx context.Context) types.Dashboard
}

// DashboardHandler serves the text the dashboard page renders around the map
// and the selectors.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleGetDashboard handles GET /dashboard requests.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Dashboard(r.Context()))
}
