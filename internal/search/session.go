package search

import (
	"sync"

	"github.com/google/uuid"
)

// Session tracks the query sequence of one asynchronous client so that a
// slow response for an older query never overwrites a newer one.
type Session struct {
	ID string

	mu   sync.Mutex
	last int64
	seen bool
}

// NewSession returns a session with a fresh random id.
func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// Accept reports whether seq is newer than every sequence accepted so far,
// and records it if so.
func (s *Session) Accept(seq int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen && seq <= s.last {
		return false
	}
	s.last, s.seen = seq, true
	return true
}

// Current reports whether seq is still the latest accepted sequence.
func (s *Session) Current(seq int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen && seq == s.last
}
