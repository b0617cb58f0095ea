package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/moviemood/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":3001")
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 5)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MOVIEMOOD_ADDR", ":8080")
			_ = os.Setenv("MOVIEMOOD_LOG_LEVEL", "debug")
			_ = os.Setenv("MOVIEMOOD_CATALOG_PATH", "/srv/movies.yaml")
			_ = os.Setenv("MOVIEMOOD_RECOMMENDATION_LIMIT", "10")
			_ = os.Setenv("MOVIEMOOD_READ_TIMEOUT_MS", "2500")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "/srv/movies.yaml")
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 10)
				convey.So(cfg.ReadTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.WriteTimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
static_dir: "/var/www/moviemood"
recommendation_limit: 3
cors_allowed_origins:
  - "https://a.example.com"
  - "https://b.example.com"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOVIEMOOD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StaticDir, convey.ShouldEqual, "/var/www/moviemood")
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 3)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example.com", "https://b.example.com"})
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
recommendation_limit: 3
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOVIEMOOD_CONFIG", tmpFile)
			_ = os.Setenv("MOVIEMOOD_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOVIEMOOD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MOVIEMOOD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MOVIEMOOD_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero recommendation limit", func() {
			_ = os.Setenv("MOVIEMOOD_RECOMMENDATION_LIMIT", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MOVIEMOOD_RECOMMENDATION_LIMIT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			cfg, err := config.Load(cctx)

			convey.Convey("Then it should fail without reading anything", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MOVIEMOOD_CONFIG",
		"MOVIEMOOD_ADDR",
		"MOVIEMOOD_LOG_LEVEL",
		"MOVIEMOOD_CATALOG_PATH",
		"MOVIEMOOD_STATIC_DIR",
		"MOVIEMOOD_RECOMMENDATION_LIMIT",
		"MOVIEMOOD_CORS_ALLOWED_ORIGINS",
		"MOVIEMOOD_READ_TIMEOUT_MS",
		"MOVIEMOOD_WRITE_TIMEOUT_MS",
		"MOVIEMOOD_SHUTDOWN_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "moviemood-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
