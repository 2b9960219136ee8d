// Package session keeps per-session conversation history in memory, bounded
// to a fixed retention window. History lives only for the process lifetime.
package session

import (
	"sync"

	"chatd/pkg/types"
)

// DefaultHistoryLimit is the number of turns retained per session
// (newest kept, oldest evicted first).
const DefaultHistoryLimit = 10

// Store is a keyed, bounded turn log. All operations are safe for concurrent
// use; append-then-truncate happens atomically under the store lock so two
// racing requests can never observe an over-long history.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]types.Turn
	limit    int
}

// NewStore returns a store with the default retention window.
func NewStore() *Store { return NewStoreWithLimit(DefaultHistoryLimit) }

// NewStoreWithLimit returns a store retaining at most limit turns per session.
func NewStoreWithLimit(limit int) *Store {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Store{sessions: make(map[string][]types.Turn), limit: limit}
}

// Get returns a copy of the session's history, empty if none exists yet.
func (s *Store) Get(id string) []types.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Turn(nil), s.sessions[id]...)
}

// Append adds a turn to the end of the session's history and re-applies the
// retention bound.
func (s *Store) Append(id string, t types.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := append(s.sessions[id], t)
	if len(hist) > s.limit {
		hist = hist[len(hist)-s.limit:]
	}
	s.sessions[id] = hist
}

// DropLast removes the most recent turn, if any. Used to roll back a user
// turn when generation fails so a retry produces a clean history.
func (s *Store) DropLast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := s.sessions[id]
	if len(hist) == 0 {
		return
	}
	hist = hist[:len(hist)-1]
	if len(hist) == 0 {
		delete(s.sessions, id)
		return
	}
	s.sessions[id] = hist
}

// Reset deletes the session's history entirely.
func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
