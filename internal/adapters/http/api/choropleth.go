package api

import (
	"context"
	"net/http"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
)

// ChoroplethDependencies defines the interface for the map export.
type ChoroplethDependencies interface {
	Choropleth(ctx context.Context) types.Choropleth
}

// ChoroplethHandler handles map data requests.
type ChoroplethHandler struct {
	deps ChoroplethDependencies
}

// NewChoroplethHandler creates a new choropleth handler.
func NewChoroplethHandler(deps ChoroplethDependencies) *ChoroplethHandler {
	return &ChoroplethHandler{deps: deps}
}

// HandleGetChoropleth handles GET /choropleth requests.
func (h *ChoroplethHandler) HandleGetChoropleth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Choropleth(r.Context()))
}

// SelectionsDependencies defines the interface for dropdown choices.
type SelectionsDependencies interface {
	Selections(ctx context.Context) model.Selections
}

// SelectionsHandler handles selection choice requests.
type SelectionsHandler struct {
	deps SelectionsDependencies
}

// NewSelectionsHandler creates a new selections handler.
func NewSelectionsHandler(deps SelectionsDependencies) *SelectionsHandler {
	return &SelectionsHandler{deps: deps}
}

// HandleGetSelections handles GET /selections requests.
func (h *SelectionsHandler) HandleGetSelections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Selections(r.Context()))
}
