package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
)

// WinsDependencies defines the interface for wins lookups.
type WinsDependencies interface {
	WinsFor(ctx context.Context, entity string) model.WinsResult
	DescribeWins(r model.WinsResult) string
}

// WinsHandler handles wins requests.
type WinsHandler struct {
	deps WinsDependencies
}

// NewWinsHandler creates a new wins handler.
func NewWinsHandler(deps WinsDependencies) *WinsHandler {
	return &WinsHandler{deps: deps}
}

// HandleGetWins handles GET /wins/{entity} requests. An entity that never
// won is answered with 200 and found=false.
func (h *WinsHandler) HandleGetWins(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_wins"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entity := strings.TrimPrefix(r.URL.Path, "/wins/")
	if entity == "" || strings.Contains(entity, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, nil))
		return
	}
	res := h.deps.WinsFor(r.Context(), entity)
	writeJSON(w, http.StatusOK, types.WinsResponse{WinsResult: res, Message: h.deps.DescribeWins(res)})
}
