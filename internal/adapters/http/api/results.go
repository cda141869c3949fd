package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/internal/domain/types"
)

// ResultsDependencies defines the interface for result lookups.
type ResultsDependencies interface {
	ResultFor(ctx context.Context, year int) model.ResultLookup
	DescribeResult(r model.ResultLookup) string
}

// ResultsHandler handles results requests.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResult handles GET /results/{year} requests. A year without a
// final is answered with 200 and found=false; a non-integer year is a 400.
func (h *ResultsHandler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_result"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/results/")
	year, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	res := h.deps.ResultFor(r.Context(), year)
	writeJSON(w, http.StatusOK, types.ResultResponse{ResultLookup: res, Message: h.deps.DescribeResult(res)})
}
