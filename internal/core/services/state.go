package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// StateKey is the session store key of the outstanding OAuth state token.
const StateKey = "graph_oauth_state"

// stateLength is the number of random bytes in a fallback state token.
const stateLength = 32

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	bytes := make([]byte, stateLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// StateTokenManager issues and verifies the single outstanding state token
// of a login attempt.
type StateTokenManager struct {
	store     driven.SessionStore
	generator driven.StateGenerator
}

// NewStateTokenManager creates a state token manager backed by store.
// If generator is nil, tokens are 32 random bytes, base64url encoded.
func NewStateTokenManager(store driven.SessionStore, generator driven.StateGenerator) *StateTokenManager {
	return &StateTokenManager{
		store:     store,
		generator: generator,
	}
}

// Issue generates a new state token and stores it as the outstanding one,
// discarding any previous token.
func (m *StateTokenManager) Issue() (string, error) {
	gen := generateState
	if m.generator != nil {
		gen = m.generator.NewState
	}

	state, err := gen()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	if state == "" {
		return "", errors.New("generate state: empty token")
	}

	m.store.PutValue(StateKey, state)
	return state, nil
}

// ConsumeAndVerify deletes the outstanding token and reports whether it
// equals candidate. The token is consumed even on mismatch, so a second
// call always fails.
func (m *StateTokenManager) ConsumeAndVerify(candidate string) bool {
	expected, _ := m.store.TakeValue(StateKey)
	if expected == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1
}

// Discard deletes the outstanding token without checking it.
func (m *StateTokenManager) Discard() {
	_, _ = m.store.TakeValue(StateKey)
}
