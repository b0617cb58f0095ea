package probe

import (
	"fmt"

	"github.com/okian/moviemood/internal/domain/model"
)

// recommendationsResponse mirrors the body of POST /api/recommendations.
type recommendationsResponse struct {
	Success         bool                   `json:"success"`
	Count           int                    `json:"count"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

// verifyResponse checks one answer against the ranking contract.
func verifyResponse(resp recommendationsResponse, limit int) error {
	if !resp.Success {
		return fmt.Errorf("%w: success flag not set", ErrVerification)
	}
	if resp.Count != len(resp.Recommendations) {
		return fmt.Errorf("%w: count %d but %d entries", ErrVerification, resp.Count, len(resp.Recommendations))
	}
	if len(resp.Recommendations) > limit {
		return fmt.Errorf("%w: %d entries exceed limit %d", ErrVerification, len(resp.Recommendations), limit)
	}
	seen := make(map[string]struct{}, len(resp.Recommendations))
	for i, r := range resp.Recommendations {
		if r.Score <= 0 {
			return fmt.Errorf("%w: entry %d (%s) has score %.1f", ErrVerification, i, r.Movie.ID, r.Score)
		}
		if i > 0 && r.Score > resp.Recommendations[i-1].Score {
			return fmt.Errorf("%w: entry %d scores higher than entry %d", ErrVerification, i, i-1)
		}
		if len(r.Reasons) != len(r.FiredRules) {
			return fmt.Errorf("%w: entry %d has %d reasons for %d fired rules",
				ErrVerification, i, len(r.Reasons), len(r.FiredRules))
		}
		if _, dup := seen[r.Movie.ID]; dup {
			return fmt.Errorf("%w: movie %s returned twice", ErrVerification, r.Movie.ID)
		}
		seen[r.Movie.ID] = struct{}{}
	}
	return nil
}
