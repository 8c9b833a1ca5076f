package config

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"
)

// Snapshot is an immutable view of the settings at one version.
type Snapshot struct {
	Version  uint64
	Settings Settings
}

// Listener is called after a new snapshot is published.
type Listener func(Snapshot)

// Store holds the current settings. Readers take a Snapshot without
// locking; writers are serialized.
type Store struct {
	fs   afero.Fs
	path string

	cur atomic.Pointer[Snapshot]

	mu        sync.Mutex
	listeners []Listener
}

// NewStore returns a store at version 1 holding s. Apply persists to path
// on fs; an empty path keeps changes in memory only.
func NewStore(fs afero.Fs, path string, s Settings) *Store {
	st := &Store{fs: fs, path: path}
	st.cur.Store(&Snapshot{Version: 1, Settings: s})
	return st
}

// Snapshot returns the current settings.
func (st *Store) Snapshot() Snapshot {
	return *st.cur.Load()
}

// Path returns the persistence location.
func (st *Store) Path() string { return st.path }

// Subscribe registers l for future Apply calls.
func (st *Store) Subscribe(l Listener) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.listeners = append(st.listeners, l)
}

// Apply validates and persists s, publishes it as the next version and
// runs every listener before returning. On error nothing changes.
func (st *Store) Apply(s Settings) (Snapshot, error) {
	if err := s.Validate(); err != nil {
		return st.Snapshot(), fmt.Errorf("apply settings: %w", err)
	}
	s.SetDefaults()

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.path != "" && st.fs != nil {
		if err := Save(st.fs, st.path, s); err != nil {
			return *st.cur.Load(), err
		}
	}
	next := &Snapshot{Version: st.cur.Load().Version + 1, Settings: s}
	st.cur.Store(next)
	for _, l := range st.listeners {
		l(*next)
	}
	return *next, nil
}

// Update applies fn to a copy of the current settings.
func (st *Store) Update(fn func(*Settings) error) (Snapshot, error) {
	s := st.Snapshot().Settings
	if err := fn(&s); err != nil {
		return st.Snapshot(), err
	}
	return st.Apply(s)
}
