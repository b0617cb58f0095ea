package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithValidation toggles per-record validation when the store is built.
func WithValidation(enabled bool) Option {
	return func(s *MemoryStore) {
		s.validate = enabled
	}
}

// WithAllowEmpty lets the store be built from an empty catalog.
func WithAllowEmpty(allow bool) Option {
	return func(s *MemoryStore) {
		s.allowEmpty = allow
	}
}
