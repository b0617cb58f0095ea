// Package repository holds the read-only movie catalog and its loaders.
package repository

import (
	"context"

	"github.com/okian/moviemood/internal/domain/model"
)

// Store provides read access to the movie catalog. Implementations are
// populated once at startup and never mutated afterwards.
type Store interface {
	// All returns every movie in catalog order.
	All(ctx context.Context) []model.Movie

	// Get returns a movie by id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Movie, error)

	// Count returns the number of movies in the catalog.
	Count(ctx context.Context) int
}
