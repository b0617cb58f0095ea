package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound          = errors.New("movie not found")
	ErrLoadCatalog       = errors.New("load catalog failed")
	ErrInvalidMovie      = errors.New("invalid movie")
	ErrDuplicateMovie    = errors.New("duplicate movie id")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrEmptyCatalog      = errors.New("catalog is empty")
)
