package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/moviemood/internal/adapters/http/api"
	service "github.com/okian/moviemood/internal/app"
	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/domain/types"
	"github.com/okian/moviemood/pkg/logger"
	"github.com/okian/moviemood/pkg/metrics"
)

func init() {
	_ = logger.InitWithWriter(io.Discard)
}

// newLiveServer runs the real API on the embedded catalog.
func newLiveServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry := prometheus.NewRegistry()
	m := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

	svc := service.New(service.WithMetrics(m), service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	server := api.NewServer(svc, svc, api.WithMetrics(m), api.WithGatherer(registry))
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)

	ts := httptest.NewServer(server.Middleware(mux))
	t.Cleanup(ts.Close)
	return ts
}

// newFakeServer answers health and options normally and every
// recommendation request with recs.
func newFakeServer(t *testing.T, health types.Health, recs []model.Recommendation) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(health)
	})
	mux.HandleFunc("GET /api/options", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(types.DefaultOptions())
	})
	mux.HandleFunc("POST /api/recommendations", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(recommendationsResponse{Success: true, Count: len(recs), Recommendations: recs})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func rec(id string, score float64) model.Recommendation {
	return model.Recommendation{
		Movie:      model.Movie{ID: id, Title: id, Genres: []string{"Drama"}},
		Score:      score,
		Reasons:    []string{"reason"},
		FiredRules: []string{"Genre Preference Match"},
	}
}

func TestRunAgainstLiveServer(t *testing.T) {
	Convey("Given a running MovieMood server", t, func() {
		ts := newLiveServer(t)
		out := filepath.Join(t.TempDir(), "out", "results.json")

		Convey("When the probe runs", func() {
			stats, err := Run(context.Background(), &Config{
				BaseURL:    ts.URL,
				Requests:   40,
				Workers:    4,
				OutputFile: out,
			})

			Convey("Then every answer should satisfy the ranking contract", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 40)
				So(stats.Sent, ShouldEqual, 40)
				So(stats.Succeeded, ShouldEqual, 40)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Violations, ShouldEqual, 0)
				So(stats.Recommendations, ShouldBeLessThanOrEqualTo, 40*DefaultLimit)
				So(stats.RunID, ShouldNotBeBlank)
			})

			Convey("And the results should be saved", func() {
				data, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				var results []Result
				So(json.Unmarshal(data, &results), ShouldBeNil)
				So(results, ShouldHaveLength, 40)
				So(results[0].Status, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestRunDetectsViolations(t *testing.T) {
	Convey("Given a server that returns an unsorted list", t, func() {
		ts := newFakeServer(t,
			types.Health{Status: types.StatusHealthy, MoviesLoaded: 2, RulesCount: 15},
			[]model.Recommendation{rec("a", 10), rec("b", 20)},
		)

		Convey("When the probe runs", func() {
			stats, err := Run(context.Background(), &Config{BaseURL: ts.URL, Requests: 5, Workers: 2})

			Convey("Then every answer should count as a violation", func() {
				So(errors.Is(err, ErrVerification), ShouldBeTrue)
				So(stats.Violations, ShouldEqual, 5)
				So(stats.Succeeded, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a server that is still starting", t, func() {
		ts := newFakeServer(t, types.Health{Status: types.StatusStarting}, nil)

		Convey("Then the probe should stop at the health check", func() {
			_, err := Run(context.Background(), &Config{BaseURL: ts.URL, Requests: 5, Workers: 2})
			So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
		})
	})

	Convey("Given an invalid config", t, func() {
		Convey("Then Run should refuse it", func() {
			_, err := Run(context.Background(), &Config{BaseURL: "http://localhost:1", Requests: 0, Workers: 1})
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			_, err = Run(context.Background(), &Config{Requests: 1, Workers: 1})
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestVerifyResponse(t *testing.T) {
	Convey("Given recommendation answers", t, func() {
		Convey("A sorted list within the limit should pass", func() {
			resp := recommendationsResponse{Success: true, Count: 2, Recommendations: []model.Recommendation{rec("a", 30), rec("b", 30)}}
			So(verifyResponse(resp, 5), ShouldBeNil)
		})

		Convey("An empty list should pass", func() {
			So(verifyResponse(recommendationsResponse{Success: true}, 5), ShouldBeNil)
		})

		Convey("Too many entries should fail", func() {
			recs := []model.Recommendation{rec("a", 5), rec("b", 4), rec("c", 3)}
			So(errors.Is(verifyResponse(recommendationsResponse{Success: true, Count: 3, Recommendations: recs}, 2), ErrVerification), ShouldBeTrue)
		})

		Convey("A zero score should fail", func() {
			resp := recommendationsResponse{Success: true, Count: 1, Recommendations: []model.Recommendation{rec("a", 0)}}
			So(errors.Is(verifyResponse(resp, 5), ErrVerification), ShouldBeTrue)
		})

		Convey("A wrong count should fail", func() {
			resp := recommendationsResponse{Success: true, Count: 3, Recommendations: []model.Recommendation{rec("a", 1)}}
			So(errors.Is(verifyResponse(resp, 5), ErrVerification), ShouldBeTrue)
		})

		Convey("A repeated movie should fail", func() {
			resp := recommendationsResponse{Success: true, Count: 2, Recommendations: []model.Recommendation{rec("a", 2), rec("a", 1)}}
			So(errors.Is(verifyResponse(resp, 5), ErrVerification), ShouldBeTrue)
		})

		Convey("Reasons out of step with fired rules should fail", func() {
			r := rec("a", 2)
			r.Reasons = nil
			resp := recommendationsResponse{Success: true, Count: 1, Recommendations: []model.Recommendation{r}}
			So(errors.Is(verifyResponse(resp, 5), ErrVerification), ShouldBeTrue)
		})
	})
}

func TestGenerator(t *testing.T) {
	Convey("Given the option catalog", t, func() {
		opts := types.DefaultOptions()

		Convey("Generated requests should be drawn from it", func() {
			reqs := generateRequests(50, opts)
			So(reqs, ShouldHaveLength, 50)

			ids := make(map[string]struct{})
			for _, r := range reqs {
				ids[r.ID] = struct{}{}
				p := r.Preferences
				So(opts.Moods, ShouldContain, p.Mood)
				So(len(p.Genres), ShouldBeBetweenOrEqual, 1, maxGenres)
				for _, g := range p.Genres {
					So(opts.Genres, ShouldContain, g)
				}
				So(types.Values(opts.Durations), ShouldContain, p.Duration)
				So(types.Values(opts.TimesOfDay), ShouldContain, p.TimeOfDay)
			}
			So(ids, ShouldHaveLength, 50)
		})

		Convey("Picked genres should be distinct", func() {
			for range 20 {
				genres := pickDistinct(opts.Genres, maxGenres)
				seen := make(map[string]struct{})
				for _, g := range genres {
					seen[g] = struct{}{}
				}
				So(seen, ShouldHaveLength, len(genres))
			}
		})

		Convey("Empty inputs should not panic", func() {
			So(pick(nil), ShouldEqual, "")
			So(pickDistinct(nil, 3), ShouldBeNil)
			So(randomIndex(0), ShouldEqual, 0)
		})
	})
}
