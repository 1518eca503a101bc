package config

import (
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type state struct {
	mu     sync.RWMutex
	values map[string]any
}

// shared backs every handle returned by New.
var shared = &state{} //nolint:gochecknoglobals

// Store is a handle on a merged configuration mapping. All handles returned
// by New observe and mutate the same process-wide mapping.
type Store struct {
	st *state
}

// New returns a handle on the process-wide configuration. The mapping is
// populated from defaults the first time, or again whenever it was emptied.
func New() *Store {
	return newHandle(shared)
}

// NewIsolated returns a handle on a private mapping populated from defaults.
func NewIsolated() *Store {
	return newHandle(&state{})
}

func newHandle(st *state) *Store {
	s := &Store{st: st}

	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.values) == 0 {
		s.resetLocked()
	}

	return s
}

// Reset discards all state and repopulates the mapping from defaults.
func (s *Store) Reset() {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	s.resetLocked()
}

func (s *Store) resetLocked() {
	log.Debug().Msg("resetting configuration from defaults")

	s.st.values = defaults()

	for k, v := range s.st.values {
		log.Debug().Str("key", k).Interface("value", v).Msg("default")
	}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	v, ok := s.st.values[key]
	if !ok {
		return nil, errors.Wrap(ErrKeyNotFound, key)
	}

	return v, nil
}

// GetString returns the string stored under key.
func (s *Store) GetString(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}

	str, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrNotAString, "%s is %T", key, v)
	}

	return str, nil
}

// Set inserts or overwrites key.
func (s *Store) Set(key string, value any) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	s.st.values[key] = value
}

// Delete removes key. The mapping is left untouched if key is absent.
func (s *Store) Delete(key string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if _, ok := s.st.values[key]; !ok {
		return errors.Wrap(ErrKeyNotFound, key)
	}

	delete(s.st.values, key)

	return nil
}

// Pop returns the value stored under key and removes it.
func (s *Store) Pop(key string) (any, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	v, ok := s.st.values[key]
	if !ok {
		return nil, errors.Wrap(ErrKeyNotFound, key)
	}

	delete(s.st.values, key)

	return v, nil
}

// Keys returns the configured keys in sorted order.
func (s *Store) Keys() []string {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.st.values))
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	return len(s.st.values)
}

// All returns a copy of the mapping.
func (s *Store) All() map[string]any {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	return maps.Clone(s.st.values)
}

// Equal reports whether both handles hold identical mappings.
func (s *Store) Equal(other *Store) bool {
	if s.st == other.st {
		return true
	}

	return reflect.DeepEqual(s.All(), other.All())
}

// DatabaseFile returns the configured database location, or the default
// when the key is missing or not a string.
func (s *Store) DatabaseFile() string {
	f, err := s.GetString(KeyDatabaseFile)
	if err != nil || f == "" {
		return DefaultDatabaseFile
	}

	return f
}
