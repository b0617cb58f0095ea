// Package model contains domain models passed between layers.
package model

// Preferences captures what a viewer asked for. Field names mirror the
// JSON accepted by POST /api/recommendations.
type Preferences struct {
	Mood             string   `json:"mood" yaml:"mood" validate:"required,notblank"`
	Genres           []string `json:"genres" yaml:"genres" validate:"required,min=1"`
	Duration         string   `json:"duration" yaml:"duration"`
	Audience         string   `json:"audience" yaml:"audience"`
	Occasion         string   `json:"occasion" yaml:"occasion"`
	Intent           string   `json:"intent" yaml:"intent"`
	RatingPreference string   `json:"ratingPreference" yaml:"ratingPreference"`
	Decade           string   `json:"decade" yaml:"decade"`
	EnergyLevel      string   `json:"energyLevel" yaml:"energyLevel"`
	TimeOfDay        string   `json:"timeOfDay" yaml:"timeOfDay"`
}

// Movie is a single catalog record.
type Movie struct {
	ID             string   `json:"id" yaml:"id" validate:"required"`
	Title          string   `json:"title" yaml:"title" validate:"required"`
	Genres         []string `json:"genres" yaml:"genres" validate:"required,min=1"`
	Duration       int      `json:"duration" yaml:"duration" validate:"gte=0"`
	Rating         string   `json:"rating" yaml:"rating"`
	Decade         string   `json:"decade" yaml:"decade"`
	Director       string   `json:"director" yaml:"director"`
	Cast           []string `json:"cast" yaml:"cast"`
	Plot           string   `json:"plot" yaml:"plot"`
	Tags           []string `json:"tags" yaml:"tags"`
	MoodFit        []string `json:"moodFit" yaml:"moodFit"`
	Poster         string   `json:"poster" yaml:"poster"`
	IMDbRating     float64  `json:"imdbRating" yaml:"imdbRating" validate:"gte=0,lte=10"`
	Occasions      []string `json:"occasions" yaml:"occasions"`
	EnergyLevel    []string `json:"energyLevel" yaml:"energyLevel"`
	TimeOfDay      []string `json:"timeOfDay" yaml:"timeOfDay"`
	Rewatchability int      `json:"rewatchability" yaml:"rewatchability" validate:"gte=0,lte=10"`
}

// RuleResult is the contribution of one fired rule.
type RuleResult struct {
	RuleName    string  `json:"ruleName"`
	Weight      float64 `json:"weight"`
	Explanation string  `json:"explanation"`
}

// Evaluation is the outcome of running every rule against one movie.
// Reasons and FiredRules follow rule table order.
type Evaluation struct {
	Score      float64      `json:"score"`
	Results    []RuleResult `json:"results"`
	Reasons    []string     `json:"reasons"`
	FiredRules []string     `json:"firedRules"`
}

// Recommendation is a ranked movie with the reasons it was picked.
type Recommendation struct {
	Movie      Movie    `json:"movie"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons"`
	FiredRules []string `json:"firedRules"`
}
