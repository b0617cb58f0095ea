package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/moviemood/internal/app"
	"github.com/okian/moviemood/internal/config"
	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/domain/types"
	"github.com/okian/moviemood/pkg/logger"
	"github.com/okian/moviemood/pkg/metrics"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(io.Discard)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const yamlPrefs = `mood: happy
genres: [Comedy, Family]
duration: medium
audience: family
occasion: family night
intent: entertainment
ratingPreference: good
decade: any
energyLevel: medium
timeOfDay: evening
`

func TestRecommendCommand(t *testing.T) {
	convey.Convey("Given the recommend command", t, func() {
		convey.Convey("When given a YAML preferences file", func() {
			out, err := execute(t, "recommend", "--prefs", writeFile(t, "prefs.yaml", yamlPrefs))

			convey.Convey("Then it should print a ranked JSON list", func() {
				convey.So(err, convey.ShouldBeNil)
				var recs []model.Recommendation
				convey.So(json.Unmarshal([]byte(out), &recs), convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldBeBetweenOrEqual, 1, 5)
				for i := 1; i < len(recs); i++ {
					convey.So(recs[i].Score, convey.ShouldBeLessThanOrEqualTo, recs[i-1].Score)
				}
			})
		})

		convey.Convey("When the limit is lowered", func() {
			out, err := execute(t, "recommend", "--limit", "2", "--prefs",
				writeFile(t, "prefs.json", `{"mood":"happy","genres":["Comedy"],"decade":"any"}`))

			convey.Convey("Then at most two entries should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var recs []model.Recommendation
				convey.So(json.Unmarshal([]byte(out), &recs), convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldBeLessThanOrEqualTo, 2)
			})
		})

		convey.Convey("When evaluating a single movie", func() {
			out, err := execute(t, "recommend", "--movie", "1", "--prefs", writeFile(t, "prefs.yaml", yamlPrefs))

			convey.Convey("Then its evaluation should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var ev model.Evaluation
				convey.So(json.Unmarshal([]byte(out), &ev), convey.ShouldBeNil)
				convey.So(ev.FiredRules, convey.ShouldContain, "Decade Nostalgia")
				convey.So(ev.Results, convey.ShouldHaveLength, len(ev.FiredRules))
			})
		})

		convey.Convey("When the mood is missing", func() {
			_, err := execute(t, "recommend", "--prefs", writeFile(t, "prefs.json", `{"genres":["Comedy"]}`))

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "mood is required")
			})
		})

		convey.Convey("When the preferences file is missing", func() {
			_, err := execute(t, "recommend", "--prefs", filepath.Join(t.TempDir(), "nope.json"))

			convey.Convey("Then it should report the read error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "reading preferences")
			})
		})

		convey.Convey("When --prefs is omitted", func() {
			_, err := execute(t, "recommend")

			convey.Convey("Then cobra should reject the call", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestReadPreferencesFromStdin(t *testing.T) {
	convey.Convey("Given preferences on stdin", t, func() {
		p, err := readPreferences("-", strings.NewReader(`{"mood":"sad","genres":["Drama"]}`))

		convey.Convey("Then they should be decoded as JSON", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Mood, convey.ShouldEqual, "sad")
			convey.So(p.Genres, convey.ShouldResemble, []string{"Drama"})
		})
	})
}

func TestRulesAndOptionsCommands(t *testing.T) {
	convey.Convey("Given the read-only commands", t, func() {
		convey.Convey("When listing rules", func() {
			out, err := execute(t, "rules")

			convey.Convey("Then all fifteen should be printed in order", func() {
				convey.So(err, convey.ShouldBeNil)
				var body struct {
					Count int      `json:"count"`
					Rules []string `json:"rules"`
				}
				convey.So(json.Unmarshal([]byte(out), &body), convey.ShouldBeNil)
				convey.So(body.Count, convey.ShouldEqual, 15)
				convey.So(body.Rules[0], convey.ShouldEqual, "Mood-Genre Harmony")
				convey.So(body.Rules[14], convey.ShouldEqual, "Genre Diversity Bonus")
			})
		})

		convey.Convey("When printing options", func() {
			out, err := execute(t, "options")

			convey.Convey("Then the option catalog should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var opts types.Options
				convey.So(json.Unmarshal([]byte(out), &opts), convey.ShouldBeNil)
				convey.So(opts.Moods, convey.ShouldContain, "nostalgic")
			})
		})

		convey.Convey("When an invalid log level is configured", func() {
			_, err := execute(t, "--log-level", "loud", "rules")

			convey.Convey("Then the command should still run", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given an invalid recommendation limit in the environment", t, func() {
		t.Setenv("MOVIEMOOD_RECOMMENDATION_LIMIT", "0")

		convey.Convey("Then every command should refuse to start", func() {
			_, err := execute(t, "rules")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "loading config")
		})
	})
}

func TestServeHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		_ = logger.InitWithWriter(io.Discard)
		ctx := context.Background()

		cfg := config.New()
		cfg.StaticDir = t.TempDir()

		registry := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
		svc := service.New(service.WithMetrics(m), service.WithLogger(logger.Nop()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)

		ts := httptest.NewServer(newHandler(ctx, cfg, svc, m, registry, logger.Nop()))
		defer ts.Close()

		get := func(path string) (int, string) {
			resp, err := http.Get(ts.URL + path)
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			body, err := io.ReadAll(resp.Body)
			convey.So(err, convey.ShouldBeNil)
			return resp.StatusCode, string(body)
		}

		convey.Convey("Then the API should be served", func() {
			code, body := get("/api/health")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, `"rulesCount":15`)
		})

		convey.Convey("And the docs should be served", func() {
			code, _ := get("/openapi.yaml")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			code, _ = get("/api-docs")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And metrics should be exposed", func() {
			code, body := get("/metrics")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, "moviemood_recommender_catalog_movies")
		})

		convey.Convey("And unknown API routes should stay JSON", func() {
			code, body := get("/api/nope")
			convey.So(code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(body, convey.ShouldContainSubstring, "API route not found")
		})

		convey.Convey("And pages should explain the missing frontend", func() {
			code, body := get("/some/page")
			convey.So(code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(body, convey.ShouldContainSubstring, "Frontend not built")
		})

		convey.Convey("And a recommendation round trip should work", func() {
			resp, err := http.Post(ts.URL+"/api/recommendations", "application/json",
				strings.NewReader(`{"mood":"happy","genres":["Comedy"],"decade":"any"}`))
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			var body struct {
				Success bool `json:"success"`
				Count   int  `json:"count"`
			}
			convey.So(json.NewDecoder(resp.Body).Decode(&body), convey.ShouldBeNil)
			convey.So(body.Success, convey.ShouldBeTrue)
			convey.So(body.Count, convey.ShouldBeBetweenOrEqual, 1, 5)
		})
	})
}
