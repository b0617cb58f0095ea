package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/okian/moviemood/internal/domain/model"
)

// Catalog file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Load reads a catalog file. The format is chosen by extension (.json,
// .yaml, .yml). An empty path loads the embedded default catalog.
func Load(ctx context.Context, path string) ([]model.Movie, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, ctx.Err())
	}
	if path == "" {
		return Parse(defaultCatalog, FormatJSON)
	}

	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return Parse(data, format)
}

// Parse decodes a catalog document, which must be a list of movies.
func Parse(data []byte, format string) ([]model.Movie, error) {
	var movies []model.Movie

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrLoadCatalog, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrLoadCatalog, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return movies, nil
}

// Open loads a catalog and builds a store from it in one step.
func Open(ctx context.Context, path string, opts ...Option) (*MemoryStore, error) {
	movies, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(ctx, movies, opts...)
}

func formatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
