package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/moviemood/internal/adapters/repository"
	"github.com/okian/moviemood/internal/domain/model"
)

// CatalogDependencies reads single catalog records.
type CatalogDependencies interface {
	Movie(ctx context.Context, id string) (model.Movie, error)
}

// MoviesHandler handles catalog lookups.
type MoviesHandler struct {
	deps CatalogDependencies
}

// NewMoviesHandler creates a new movies handler.
func NewMoviesHandler(deps CatalogDependencies) *MoviesHandler {
	return &MoviesHandler{deps: deps}
}

// HandleGetMovie handles GET /api/movies/{id} requests.
func (h *MoviesHandler) HandleGetMovie(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_movie"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	m, err := h.deps.Movie(r.Context(), id)
	if err != nil {
		writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func writeLookupError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	// The cause stays server-side; scoring failures are logged by the service.
	writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
}
