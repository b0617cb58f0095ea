package types

import "time"

// Health is the body of GET /api/health.
type Health struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	MoviesLoaded int       `json:"moviesLoaded"`
	RulesCount   int       `json:"rulesCount"`
}

// Health statuses.
const (
	StatusHealthy  = "healthy"
	StatusStarting = "starting"
)
