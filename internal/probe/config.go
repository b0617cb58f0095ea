// Package probe drives a running MovieMood server with randomized
// preference requests and checks every answer against the ranking
// contract: at most the configured number of entries, positive scores,
// best first.
package probe

import (
	"errors"
	"time"

	"github.com/okian/moviemood/internal/domain/model"
)

// Errors returned by Run.
var (
	ErrInvalidConfig = errors.New("invalid probe config")
	ErrUnhealthy     = errors.New("service is not healthy")
	ErrVerification  = errors.New("recommendation verification failed")
)

// Defaults used by the CLI.
const (
	DefaultBaseURL  = "http://localhost:3001"
	DefaultRequests = 200
	DefaultTimeout  = 10 * time.Second
	DefaultLimit    = 5
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Requests   int           // Number of recommendation requests to send
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Limit      int           // Largest list the server may return
	OutputFile string        // Optional JSON dump of requests and answers
	Verbose    bool          // Log every failed request
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return errors.Join(ErrInvalidConfig, errors.New("base url is required"))
	case c.Requests <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("requests must be positive"))
	case c.Workers <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("workers must be positive"))
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	return nil
}

// Request is one generated preferences record.
type Request struct {
	ID          string            `json:"id"`
	Preferences model.Preferences `json:"preferences"`
}

// Result pairs a request with what the server answered.
type Result struct {
	Request         Request                `json:"request"`
	Status          int                    `json:"status"`
	Recommendations []model.Recommendation `json:"recommendations,omitempty"`
	Error           string                 `json:"error,omitempty"`
	Latency         time.Duration          `json:"latency"`
}

// Stats holds run statistics.
type Stats struct {
	RunID           string
	Generated       int
	Sent            int
	Succeeded       int
	Empty           int
	Failed          int
	Violations      int
	Recommendations int
	TopScore        float64
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
