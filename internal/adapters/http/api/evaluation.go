package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/moviemood/internal/domain/model"
)

// EvaluationDependencies scores one movie without ranking.
type EvaluationDependencies interface {
	Evaluate(ctx context.Context, p model.Preferences, movieID string) (model.Evaluation, error)
}

// EvaluationHandler explains how a single movie scores for a preferences
// record, including movies that would not make the top list.
type EvaluationHandler struct {
	deps         EvaluationDependencies
	maxBodyBytes int64
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(deps EvaluationDependencies, maxBodyBytes int64) *EvaluationHandler {
	return &EvaluationHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleEvaluate handles POST /api/movies/{id}/evaluation requests.
func (h *EvaluationHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_evaluation"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	prefs, ok := decodePreferences(w, r, op, h.maxBodyBytes)
	if !ok {
		return
	}

	ev, err := h.deps.Evaluate(r.Context(), prefs, id)
	if err != nil {
		writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}
