package driven

import "github.com/custodia-labs/graphscope/internal/core/domain"

// SessionStore holds the session-scoped state of one running client.
// It is created at boot and lives as long as the process; nothing in it is
// written to disk.
type SessionStore interface {
	// Session returns the current session.
	Session() domain.Session

	// SetSession replaces the current session.
	SetSession(session domain.Session)

	// ClearSession resets the session to disconnected with no token.
	ClearSession()

	// PutValue stores a value under key, overwriting any previous value.
	PutValue(key, value string)

	// TakeValue returns and deletes the value under key.
	// Deleting a missing key is a no-op.
	TakeValue(key string) (string, bool)
}
