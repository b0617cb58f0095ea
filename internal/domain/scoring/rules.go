package scoring

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/moviemood/internal/domain/model"
)

// Built-in rule names, in table order.
const (
	RuleMoodGenreHarmony        = "Mood-Genre Harmony"
	RuleGenrePreferenceMatch    = "Genre Preference Match"
	RuleDurationSweetSpot       = "Duration Sweet Spot"
	RuleAudienceCompatibility   = "Audience Compatibility"
	RuleOccasionAppropriateness = "Occasion Appropriateness"
	RuleIntentAlignment         = "Intent Alignment"
	RuleRatingPreference        = "Rating Preference"
	RuleDecadeNostalgia         = "Decade Nostalgia"
	RuleEnergyLevelMatch        = "Energy Level Match"
	RuleTimeOfDaySuitability    = "Time of Day Suitability"
	RuleHighRewatchability      = "High Rewatchability Bonus"
	RuleDirectorSignature       = "Director's Signature Style"
	RuleCriticalAcclaim         = "Critical Acclaim Bonus"
	RuleMoodEnergySynergy       = "Mood-Energy Synergy"
	RuleGenreDiversity          = "Genre Diversity Bonus"
)

const (
	anyDecade             = "any"
	rewatchableThreshold  = 8
	acclaimRatingMinimum  = 8.0
	inspiringRatingFloor  = 8.0
	diverseGenreThreshold = 3
	defaultAudienceWeight = 8
	defaultRatingWeight   = 5
	perfectDurationWeight = 12
	fairDurationWeight    = 6
	strongMoodWeight      = 10
	weakMoodWeight        = 5
	genreMatchWeight      = 8
	anyDecadeWeight       = 2
	matchedDecadeWeight   = 8
	occasionWeight        = 15
	intentWeight          = 10
	energyMatchWeight     = 12
	timeOfDayWeight       = 8
	directorWeight        = 6
	acclaimWeight         = 8
	synergyWeight         = 7
	diversityWeight       = 4
)

// Func evaluates one aspect of a (preferences, movie) pair.
type Func[T any] func(p model.Preferences, m model.Movie) T

// Rule is a named scoring rule. Weight and Explanation are only invoked
// after Condition returned true.
type Rule struct {
	Name        string
	Condition   Func[bool]
	Weight      Func[float64]
	Explanation Func[string]
}

// Constant returns a weight function that always yields w.
func Constant(w float64) Func[float64] {
	return func(model.Preferences, model.Movie) float64 { return w }
}

// Text returns an explanation function that always yields s.
func Text(s string) Func[string] {
	return func(model.Preferences, model.Movie) string { return s }
}

// intentPredicates holds one movie test per viewing intent.
var intentPredicates = map[string]func(m model.Movie) bool{ //nolint:gochecknoglobals // read-only lookup table
	"entertainment": func(m model.Movie) bool {
		return overlaps(m.Genres, []string{"Action", "Comedy", "Adventure", "Animation"})
	},
	"education": func(m model.Movie) bool {
		return overlaps(m.Genres, []string{"Biography", "Documentary", "Drama", "History"})
	},
	"relaxation": func(m model.Movie) bool {
		return overlaps(m.Genres, []string{"Comedy", "Romance", "Family", "Animation"})
	},
	"inspiration": func(m model.Movie) bool {
		return m.IMDbRating >= inspiringRatingFloor || overlaps(m.Tags, inspiringTags)
	},
	"escape": func(m model.Movie) bool {
		return overlaps(m.Genres, []string{"Sci-Fi", "Fantasy", "Adventure", "Action"})
	},
	"romance": func(m model.Movie) bool {
		return slices.Contains(m.Genres, "Romance") || slices.Contains(m.MoodFit, "romantic")
	},
}

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() []Rule { //nolint:funlen // the rule table reads best as one literal
	return []Rule{
		{
			Name: RuleMoodGenreHarmony,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return overlaps(moodGenres[p.Mood], m.Genres)
			},
			Weight: func(p model.Preferences, m model.Movie) float64 {
				if slices.Contains(m.MoodFit, p.Mood) {
					return strongMoodWeight
				}
				return weakMoodWeight
			},
			Explanation: func(p model.Preferences, m model.Movie) string {
				return fmt.Sprintf("Perfect mood match: This %s film aligns with your %s mood", strings.Join(m.Genres, ", "), p.Mood)
			},
		},
		{
			Name: RuleGenrePreferenceMatch,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return overlaps(p.Genres, m.Genres)
			},
			Weight: func(p model.Preferences, m model.Movie) float64 {
				return float64(len(intersect(p.Genres, m.Genres)) * genreMatchWeight)
			},
			Explanation: func(p model.Preferences, m model.Movie) string {
				return "Genre match: Contains your preferred genres - " + strings.Join(intersect(p.Genres, m.Genres), ", ")
			},
		},
		{
			Name: RuleDurationSweetSpot,
			Condition: func(p model.Preferences, m model.Movie) bool {
				band, ok := durationRanges[p.Duration]
				if !ok {
					band = fallbackDuration
				}
				return band.contains(m.Duration)
			},
			Weight: func(p model.Preferences, m model.Movie) float64 {
				if perfect, ok := perfectDuration[p.Duration]; ok && perfect(m.Duration) {
					return perfectDurationWeight
				}
				return fairDurationWeight
			},
			Explanation: func(p model.Preferences, m model.Movie) string {
				return fmt.Sprintf("Perfect length: %d minutes fits your %s movie preference", m.Duration, p.Duration)
			},
		},
		{
			Name: RuleAudienceCompatibility,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return slices.Contains(audienceRatings[p.Audience], m.Rating)
			},
			Weight: func(p model.Preferences, m model.Movie) float64 {
				if w, ok := audienceBonus[p.Audience+"|"+m.Rating]; ok {
					return w
				}
				return defaultAudienceWeight
			},
			Explanation: func(p model.Preferences, m model.Movie) string {
				return fmt.Sprintf("Audience perfect: %s rating is ideal for %s viewing", m.Rating, p.Audience)
			},
		},
		{
			Name: RuleOccasionAppropriateness,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return slices.Contains(m.Occasions, p.Occasion)
			},
			Weight: Constant(occasionWeight),
			Explanation: func(p model.Preferences, _ model.Movie) string {
				return "Perfect occasion: Specially suited for " + p.Occasion
			},
		},
		{
			Name: RuleIntentAlignment,
			Condition: func(p model.Preferences, m model.Movie) bool {
				matches, ok := intentPredicates[p.Intent]
				return ok && matches(m)
			},
			Weight: Constant(intentWeight),
			Explanation: func(p model.Preferences, _ model.Movie) string {
				return "Intent match: Perfect for your goal of " + p.Intent
			},
		},
		{
			Name: RuleRatingPreference,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return m.IMDbRating >= ratingThresholds[p.RatingPreference]
			},
			Weight: func(p model.Preferences, m model.Movie) float64 {
				bonus, ok := ratingTierBonus[p.RatingPreference]
				if ok && m.IMDbRating >= ratingThresholds[p.RatingPreference] {
					return bonus
				}
				return defaultRatingWeight
			},
			Explanation: func(p model.Preferences, m model.Movie) string {
				return fmt.Sprintf("Quality assured: %s/10 rating meets your %s standards", formatRating(m.IMDbRating), p.RatingPreference)
			},
		},
		{
			Name: RuleDecadeNostalgia,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return p.Decade == anyDecade || m.Decade == p.Decade
			},
			Weight: func(p model.Preferences, m model.Movie) float64 {
				switch {
				case p.Decade == anyDecade:
					return anyDecadeWeight
				case m.Decade == p.Decade:
					return matchedDecadeWeight
				default:
					return 0
				}
			},
			Explanation: func(p model.Preferences, m model.Movie) string {
				if p.Decade == anyDecade {
					return fmt.Sprintf("Timeless appeal: Great %s cinema", m.Decade)
				}
				return fmt.Sprintf("Era perfect: Classic %s filmmaking at its finest", p.Decade)
			},
		},
		{
			Name: RuleEnergyLevelMatch,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return slices.Contains(m.EnergyLevel, p.EnergyLevel)
			},
			Weight: Constant(energyMatchWeight),
			Explanation: func(p model.Preferences, _ model.Movie) string {
				return fmt.Sprintf("Energy perfect: Matches your %s energy level perfectly", p.EnergyLevel)
			},
		},
		{
			Name: RuleTimeOfDaySuitability,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return slices.Contains(m.TimeOfDay, p.TimeOfDay)
			},
			Weight: Constant(timeOfDayWeight),
			Explanation: func(p model.Preferences, _ model.Movie) string {
				return fmt.Sprintf("Timing ideal: Perfect for %s viewing", p.TimeOfDay)
			},
		},
		{
			Name: RuleHighRewatchability,
			Condition: func(_ model.Preferences, m model.Movie) bool {
				return m.Rewatchability >= rewatchableThreshold
			},
			Weight: func(_ model.Preferences, m model.Movie) float64 {
				return float64(m.Rewatchability)
			},
			Explanation: Text("Rewatchable gem: You'll want to see this masterpiece again and again"),
		},
		{
			Name: RuleDirectorSignature,
			Condition: func(_ model.Preferences, m model.Movie) bool {
				return slices.Contains(auteurDirectors, m.Director)
			},
			Weight: Constant(directorWeight),
			Explanation: func(_ model.Preferences, m model.Movie) string {
				return fmt.Sprintf("Auteur excellence: %s's distinctive filmmaking vision", m.Director)
			},
		},
		{
			Name: RuleCriticalAcclaim,
			Condition: func(_ model.Preferences, m model.Movie) bool {
				if m.IMDbRating < acclaimRatingMinimum {
					return false
				}
				return slices.ContainsFunc(m.Tags, func(tag string) bool {
					return slices.Contains(acclaimTags, strings.ToLower(tag))
				})
			},
			Weight:      Constant(acclaimWeight),
			Explanation: Text("Critically acclaimed: A recognized cinematic achievement"),
		},
		{
			Name: RuleMoodEnergySynergy,
			Condition: func(p model.Preferences, m model.Movie) bool {
				return overlaps(moodEnergyGenres[p.Mood+"-"+p.EnergyLevel], m.Genres)
			},
			Weight:      Constant(synergyWeight),
			Explanation: Text("Perfect synergy: Mood and energy level create ideal viewing experience"),
		},
		{
			Name: RuleGenreDiversity,
			Condition: func(_ model.Preferences, m model.Movie) bool {
				return len(m.Genres) >= diverseGenreThreshold
			},
			Weight: Constant(diversityWeight),
			Explanation: func(_ model.Preferences, m model.Movie) string {
				return fmt.Sprintf("Multi-genre appeal: Blends %s for rich storytelling", strings.Join(m.Genres, ", "))
			},
		},
	}
}

// overlaps reports whether any element of want is present in have.
func overlaps(want, have []string) bool {
	return slices.ContainsFunc(want, func(s string) bool { return slices.Contains(have, s) })
}

// intersect keeps the elements of want that appear in have, in want order.
func intersect(want, have []string) []string {
	var out []string
	for _, s := range want {
		if slices.Contains(have, s) {
			out = append(out, s)
		}
	}
	return out
}

// formatRating prints a rating with the shortest exact decimal form (8 -> "8", 7.5 -> "7.5").
func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
