package api

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/validation"
	"github.com/okian/moviemood/pkg/logger"
)

// Client-facing messages kept compatible with the existing web client.
const (
	msgInvalidPreferences = "Invalid preferences. Mood and genres array are required."
	msgScoringFailed      = "Internal server error while generating recommendations"
)

// RecommendationDependencies scores the catalog for a preferences record.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, p model.Preferences) ([]model.Recommendation, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps         RecommendationDependencies
	logger       logger.Logger
	maxBodyBytes int64
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, log logger.Logger, maxBodyBytes int64) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, logger: log, maxBodyBytes: maxBodyBytes}
}

// HandleRecommend handles POST /api/recommendations requests.
func (h *RecommendationsHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"

	prefs, ok := decodePreferences(w, r, op, h.maxBodyBytes)
	if !ok {
		return
	}

	recs, err := h.deps.Recommend(r.Context(), prefs)
	if err != nil {
		h.logger.Error(r.Context(), "error generating recommendations",
			logger.String("requestID", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "internal_error",
			Message: ErrInternal.Error(),
			Error:   msgScoringFailed,
		})
		return
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}

	writeJSON(w, http.StatusOK, recommendationsResponse{
		Success:         true,
		Count:           len(recs),
		Recommendations: recs,
	})
}

// decodePreferences reads and validates a preferences body. On failure it
// has already written a 400 and returns false.
func decodePreferences(w http.ResponseWriter, r *http.Request, op string, maxBodyBytes int64) (model.Preferences, bool) {
	var prefs model.Preferences

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&prefs); err != nil {
		writeBadPreferences(w, WrapKind(op, ErrBadRequest, err))
		return prefs, false
	}
	if err := validation.ValidateStruct(prefs); err != nil {
		writeBadPreferences(w, WrapKind(op, ErrBadRequest, err))
		return prefs, false
	}
	return prefs, true
}

func writeBadPreferences(w http.ResponseWriter, err error) {
	code := "bad_request"
	var ve validation.Errors
	if errors.As(err, &ve) {
		code = "validation_failed"
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    code,
		Message: err.Error(),
		Error:   msgInvalidPreferences,
	})
}
