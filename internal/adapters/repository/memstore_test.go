package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/moviemood/internal/domain/model"
)

func sampleMovies() []model.Movie {
	return []model.Movie{
		{ID: "a", Title: "Alpha", Genres: []string{"Comedy"}, Duration: 95, IMDbRating: 7.1, Rewatchability: 6},
		{ID: "b", Title: "Bravo", Genres: []string{"Drama"}, Duration: 120, IMDbRating: 8.2, Rewatchability: 8},
		{ID: "c", Title: "Charlie", Genres: []string{"Horror", "Thriller"}, Duration: 101, IMDbRating: 6.4, Rewatchability: 3},
	}
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(ctx, sampleMovies())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count := store.Count(ctx); count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	all := store.All(ctx)
	for i, want := range []string{"a", "b", "c"} {
		if all[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, all[i].ID)
		}
	}

	m, err := store.Get(ctx, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Bravo" {
		t.Errorf("expected Bravo, got %q", m.Title)
	}

	if _, err := store.Get(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(ctx, sampleMovies())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.All(ctx)
	all[0] = model.Movie{ID: "mutated"}

	if got := store.All(ctx)[0].ID; got != "a" {
		t.Errorf("store was mutated through All(): first id is %q", got)
	}
}

func TestMemoryStore_InputSliceIsCopied(t *testing.T) {
	ctx := context.Background()
	movies := sampleMovies()
	store, err := NewMemoryStore(ctx, movies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	movies[1].Title = "changed"
	m, _ := store.Get(ctx, "b")
	if m.Title != "Bravo" {
		t.Errorf("expected store to keep its own copy, got title %q", m.Title)
	}
}

func TestMemoryStore_Empty(t *testing.T) {
	ctx := context.Background()

	if _, err := NewMemoryStore(ctx, nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}

	store, err := NewMemoryStore(ctx, nil, WithAllowEmpty(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Count(ctx) != 0 {
		t.Errorf("expected empty store, got %d", store.Count(ctx))
	}
	if all := store.All(ctx); len(all) != 0 {
		t.Errorf("expected no movies, got %d", len(all))
	}
}

func TestMemoryStore_Validation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		movie model.Movie
	}{
		{"missing id", model.Movie{Title: "x", Genres: []string{"Drama"}}},
		{"missing title", model.Movie{ID: "x", Genres: []string{"Drama"}}},
		{"no genres", model.Movie{ID: "x", Title: "x"}},
		{"rating above ten", model.Movie{ID: "x", Title: "x", Genres: []string{"Drama"}, IMDbRating: 11}},
		{"negative duration", model.Movie{ID: "x", Title: "x", Genres: []string{"Drama"}, Duration: -1}},
		{"rewatchability above ten", model.Movie{ID: "x", Title: "x", Genres: []string{"Drama"}, Rewatchability: 12}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMemoryStore(ctx, []model.Movie{tc.movie})
			if !errors.Is(err, ErrInvalidMovie) {
				t.Errorf("expected ErrInvalidMovie, got %v", err)
			}
		})
	}

	t.Run("validation disabled", func(t *testing.T) {
		store, err := NewMemoryStore(ctx, []model.Movie{{ID: "x"}}, WithValidation(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.Count(ctx) != 1 {
			t.Errorf("expected 1 movie, got %d", store.Count(ctx))
		}
	})
}

func TestMemoryStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	movies := append(sampleMovies(), model.Movie{ID: "a", Title: "Again", Genres: []string{"Drama"}})

	if _, err := NewMemoryStore(ctx, movies); !errors.Is(err, ErrDuplicateMovie) {
		t.Errorf("expected ErrDuplicateMovie, got %v", err)
	}
}

func TestMemoryStore_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(ctx, sampleMovies())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n := len(store.All(ctx)); n != 3 {
				t.Errorf("expected 3 movies, got %d", n)
			}
			if _, err := store.Get(ctx, "c"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}
