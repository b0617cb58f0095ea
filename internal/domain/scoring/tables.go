package scoring

// Preference-keyed lookup tables used by the built-in rules. Every lookup on
// an unknown key yields the zero value (nil slice, zero range, zero
// threshold) so an unrecognised preference simply fails to match.

// moodGenres maps a mood to the genres that usually satisfy it.
var moodGenres = map[string][]string{ //nolint:gochecknoglobals // read-only lookup table
	"happy":         {"Comedy", "Animation", "Adventure", "Musical"},
	"sad":           {"Drama", "Romance"},
	"excited":       {"Action", "Thriller", "Adventure", "Sci-Fi"},
	"relaxed":       {"Comedy", "Romance", "Drama"},
	"contemplative": {"Drama", "Sci-Fi", "Biography", "Documentary"},
	"scared":        {"Horror", "Thriller"},
	"romantic":      {"Romance", "Drama", "Musical"},
	"nostalgic":     {"Family", "Animation", "Biography"},
	"energetic":     {"Action", "Adventure", "Musical"},
	"melancholic":   {"Drama", "Romance", "Biography"},
}

// minuteRange is an inclusive [Min, Max] span of minutes.
type minuteRange struct {
	Min int
	Max int
}

func (r minuteRange) contains(minutes int) bool {
	return minutes >= r.Min && minutes <= r.Max
}

// fallbackDuration applies to unknown duration buckets.
var fallbackDuration = minuteRange{Min: 0, Max: 300} //nolint:gochecknoglobals // read-only lookup table

// durationRanges is the acceptable band per duration bucket.
var durationRanges = map[string]minuteRange{ //nolint:gochecknoglobals // read-only lookup table
	"short":  {Min: 60, Max: 100},
	"medium": {Min: 90, Max: 140},
	"long":   {Min: 120, Max: 200},
	"epic":   {Min: 150, Max: 300},
}

// perfectDuration reports whether a runtime sits in the tight sub-range for a bucket.
var perfectDuration = map[string]func(minutes int) bool{ //nolint:gochecknoglobals // read-only lookup table
	"short":  func(m int) bool { return m <= 100 },
	"medium": func(m int) bool { return m >= 90 && m <= 140 },
	"long":   func(m int) bool { return m >= 120 && m <= 180 },
	"epic":   func(m int) bool { return m >= 150 },
}

// audienceRatings lists the content ratings acceptable for each audience.
var audienceRatings = map[string][]string{ //nolint:gochecknoglobals // read-only lookup table
	"solo":   {"G", "PG", "PG-13", "R"},
	"family": {"G", "PG", "PG-13"},
	"kids":   {"G", "PG"},
	"adults": {"PG-13", "R"},
	"mature": {"R"},
}

// audienceBonus holds the special-cased audience/rating weights.
var audienceBonus = map[string]float64{ //nolint:gochecknoglobals // read-only lookup table
	"kids|G":   20,
	"family|G": 15,
	"adults|R": 12,
}

// ratingThresholds is the minimum IMDb rating per quality tier.
var ratingThresholds = map[string]float64{ //nolint:gochecknoglobals // read-only lookup table
	"any":         0,
	"good":        7.0,
	"great":       8.0,
	"masterpiece": 8.5,
}

// ratingTierBonus is the weight awarded when a movie clears its tier.
var ratingTierBonus = map[string]float64{ //nolint:gochecknoglobals // read-only lookup table
	"masterpiece": 15,
	"great":       12,
	"good":        8,
}

// auteurDirectors are directors with a recognisable signature style.
var auteurDirectors = []string{ //nolint:gochecknoglobals // read-only lookup table
	"Christopher Nolan", "Wes Anderson", "Quentin Tarantino",
	"Stanley Kubrick", "Martin Scorsese", "Hayao Miyazaki",
	"Denis Villeneuve", "Bong Joon-ho",
}

// acclaimTags are compared case-insensitively.
var acclaimTags = []string{"masterpiece", "iconic", "groundbreaking", "innovative"} //nolint:gochecknoglobals // read-only lookup table

// inspiringTags are compared case-sensitively.
var inspiringTags = []string{"inspiring", "uplifting", "powerful"} //nolint:gochecknoglobals // read-only lookup table

// moodEnergyGenres is keyed by "mood-energyLevel". Only a few combinations
// are defined; the rest never fire.
var moodEnergyGenres = map[string][]string{ //nolint:gochecknoglobals // read-only lookup table
	"happy-high":           {"Action", "Adventure", "Comedy", "Musical"},
	"sad-low":              {"Drama", "Romance"},
	"excited-high":         {"Action", "Thriller", "Adventure"},
	"contemplative-medium": {"Drama", "Sci-Fi", "Biography"},
	"relaxed-low":          {"Comedy", "Romance", "Family"},
}
