package memory

import (
	"sync"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is the in-memory session of one running client.
// It is safe for concurrent use.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session
	values  map[string]string
}

// NewSessionStore creates a disconnected session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		values: make(map[string]string),
	}
}

// Session returns the current session.
func (s *SessionStore) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SetSession replaces the current session.
func (s *SessionStore) SetSession(session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// ClearSession resets the session to disconnected with no token.
func (s *SessionStore) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
}

// PutValue stores a value under key.
func (s *SessionStore) PutValue(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// TakeValue returns and deletes the value under key.
func (s *SessionStore) TakeValue(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.values[key]
	delete(s.values, key)
	return val, ok
}
