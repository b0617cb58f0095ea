package probe

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/domain/types"
)

const maxGenres = 3

// randomIndex returns a uniform index in [0,n) using crypto/rand.
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[randomIndex(len(values))]
}

// pickDistinct returns between 1 and limit distinct values.
func pickDistinct(values []string, limit int) []string {
	if len(values) == 0 {
		return nil
	}
	n := 1 + randomIndex(min(limit, len(values)))
	pool := append([]string(nil), values...)
	out := make([]string, 0, n)
	for range n {
		i := randomIndex(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}

// generatePreferences draws a preferences record from the option catalog
// offered to UI clients, so every request is one a real form could send.
func generatePreferences(opts types.Options) model.Preferences {
	return model.Preferences{
		Mood:             pick(opts.Moods),
		Genres:           pickDistinct(opts.Genres, maxGenres),
		Duration:         pick(types.Values(opts.Durations)),
		Audience:         pick(types.Values(opts.Audiences)),
		Occasion:         pick(opts.Occasions),
		Intent:           pick(types.Values(opts.Intents)),
		RatingPreference: pick(types.Values(opts.RatingPreferences)),
		Decade:           pick(types.Values(opts.Decades)),
		EnergyLevel:      pick(types.Values(opts.EnergyLevels)),
		TimeOfDay:        pick(types.Values(opts.TimesOfDay)),
	}
}

// generateRequests creates n requests with unique ids.
func generateRequests(n int, opts types.Options) []Request {
	out := make([]Request, n)
	for i := range out {
		out[i] = Request{
			ID:          uuid.NewString(),
			Preferences: generatePreferences(opts),
		}
	}
	return out
}
