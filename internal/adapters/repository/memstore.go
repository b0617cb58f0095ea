package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/validation"
)

// MemoryStore is an immutable in-memory catalog. Reads take no locks since
// nothing writes after construction.
type MemoryStore struct {
	movies     []model.Movie
	index      map[string]int
	validate   bool
	allowEmpty bool
}

// NewMemoryStore builds a store from movies, preserving their order.
// Each record is validated and ids must be unique.
func NewMemoryStore(_ context.Context, movies []model.Movie, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		validate: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	if len(movies) == 0 && !s.allowEmpty {
		return nil, ErrEmptyCatalog
	}

	s.movies = slices.Clone(movies)
	s.index = make(map[string]int, len(movies))
	for i, m := range s.movies {
		if s.validate {
			if err := validation.ValidateStruct(m); err != nil {
				return nil, fmt.Errorf("%w: record %d (%q): %w", ErrInvalidMovie, i, m.ID, err)
			}
		}
		if _, dup := s.index[m.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMovie, m.ID)
		}
		s.index[m.ID] = i
	}

	return s, nil
}

// All returns the catalog in its original order. The returned slice is a
// copy; the movie values share their inner slices with the store and must
// be treated as read-only.
func (s *MemoryStore) All(_ context.Context) []model.Movie {
	return slices.Clone(s.movies)
}

// Get returns the movie with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Movie, error) {
	i, ok := s.index[id]
	if !ok {
		return model.Movie{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.movies[i], nil
}

// Count returns the number of movies.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.movies)
}
