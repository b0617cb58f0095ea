package repository

import _ "embed"

// defaultCatalog is the catalog served when no catalog file is configured.
//
//go:embed data/movies.json
var defaultCatalog []byte

// DefaultCatalog returns a copy of the embedded catalog document.
func DefaultCatalog() []byte {
	out := make([]byte, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}
