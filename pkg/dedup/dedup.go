package dedup

import (
	"context"
	"sync"
)

// Loader returns the plates already persisted. It must return an empty slice,
// not an error, when no store exists yet.
type Loader interface {
	LoadExisting(ctx context.Context) ([]string, error)
}

// Store is the set of plates known to this process.
type Store struct {
	mu     sync.Mutex
	plates map[string]struct{}
}

// New returns a store holding plates.
func New(plates ...string) *Store {
	s := &Store{plates: make(map[string]struct{}, len(plates))}
	for _, p := range plates {
		s.plates[p] = struct{}{}
	}
	return s
}

// Seed builds a store from everything the loader has persisted.
func Seed(ctx context.Context, l Loader) (*Store, error) {
	plates, err := l.LoadExisting(ctx)
	if err != nil {
		return nil, err
	}
	return New(plates...), nil
}

func (s *Store) Contains(plate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.plates[plate]
	return ok
}

// Add records plate. Adding a known plate is a no-op.
func (s *Store) Add(plate string) {
	s.mu.Lock()
	s.plates[plate] = struct{}{}
	s.mu.Unlock()
}

// Claim adds plate and reports whether it was new. Concurrent workers must use
// Claim rather than Contains followed by Add.
func (s *Store) Claim(plate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plates[plate]; ok {
		return false
	}
	s.plates[plate] = struct{}{}
	return true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plates)
}
