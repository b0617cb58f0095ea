package api

import (
	"context"
	"net/http"

	"github.com/okian/moviemood/internal/domain/types"
)

// OptionsDependencies exposes the legal preference values.
type OptionsDependencies interface {
	Options(ctx context.Context) types.Options
}

// OptionsHandler serves the static option catalog used by the form.
type OptionsHandler struct {
	deps OptionsDependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps OptionsDependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

// HandleOptions handles GET /api/options requests.
func (h *OptionsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Options(r.Context()))
}
