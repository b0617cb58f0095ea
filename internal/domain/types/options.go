// Package types contains common presentation types used across the application.
package types

// Choice is a selectable value with a display label.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Options lists the legal preference values offered to UI clients. It is
// purely presentational; the scoring engine accepts any string.
type Options struct {
	Moods             []string `json:"moods"`
	Genres            []string `json:"genres"`
	Durations         []Choice `json:"durations"`
	Audiences         []Choice `json:"audiences"`
	Occasions         []string `json:"occasions"`
	Intents           []Choice `json:"intents"`
	RatingPreferences []Choice `json:"ratingPreferences"`
	Decades           []Choice `json:"decades"`
	EnergyLevels      []Choice `json:"energyLevels"`
	TimesOfDay        []Choice `json:"timesOfDay"`
}

// DefaultOptions returns a fresh copy of the built-in option catalog.
func DefaultOptions() Options { //nolint:funlen // static data
	return Options{
		Moods: []string{
			"happy", "sad", "excited", "relaxed", "contemplative",
			"scared", "romantic", "nostalgic", "energetic", "melancholic",
		},
		Genres: []string{
			"Action", "Adventure", "Animation", "Biography", "Comedy",
			"Crime", "Drama", "Family", "Horror", "Musical", "Mystery",
			"Romance", "Sci-Fi", "Thriller",
		},
		Durations: []Choice{
			{Value: "short", Label: "Short (60-100 min)"},
			{Value: "medium", Label: "Medium (90-140 min)"},
			{Value: "long", Label: "Long (120-200 min)"},
			{Value: "epic", Label: "Epic (150+ min)"},
		},
		Audiences: []Choice{
			{Value: "solo", Label: "Just me"},
			{Value: "family", Label: "Family friendly"},
			{Value: "kids", Label: "Kids"},
			{Value: "adults", Label: "Adults only"},
			{Value: "mature", Label: "Mature audiences"},
		},
		Occasions: []string{
			"date night", "family night", "movie night", "solo viewing",
			"group viewing", "casual viewing", "serious viewing",
		},
		Intents: []Choice{
			{Value: "entertainment", Label: "Pure entertainment"},
			{Value: "education", Label: "Learn something"},
			{Value: "relaxation", Label: "Relax and unwind"},
			{Value: "inspiration", Label: "Get inspired"},
			{Value: "escape", Label: "Escape reality"},
			{Value: "romance", Label: "Romance and love"},
		},
		RatingPreferences: []Choice{
			{Value: "any", Label: "Any rating is fine"},
			{Value: "good", Label: "Good movies (7.0+)"},
			{Value: "great", Label: "Great movies (8.0+)"},
			{Value: "masterpiece", Label: "Masterpieces only (8.5+)"},
		},
		Decades: []Choice{
			{Value: "any", Label: "Any decade"},
			{Value: "2020s", Label: "2020s"},
			{Value: "2010s", Label: "2010s"},
			{Value: "2000s", Label: "2000s"},
			{Value: "1990s", Label: "1990s"},
			{Value: "1980s", Label: "1980s"},
		},
		EnergyLevels: []Choice{
			{Value: "low", Label: "Low energy, chill"},
			{Value: "medium", Label: "Medium energy"},
			{Value: "high", Label: "High energy"},
			{Value: "very high", Label: "Very high energy"},
		},
		TimesOfDay: []Choice{
			{Value: "morning", Label: "Morning"},
			{Value: "afternoon", Label: "Afternoon"},
			{Value: "evening", Label: "Evening"},
			{Value: "night", Label: "Late night"},
		},
	}
}

// Values extracts the raw values of a choice list.
func Values(choices []Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Value
	}
	return out
}
