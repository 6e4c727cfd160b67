package domain

import "time"

// Session holds the access token obtained from the implicit grant.
// It is created disconnected at boot and only ever lives in memory.
type Session struct {
	// AccessToken is the opaque bearer value returned in the redirect fragment.
	AccessToken string
	// Expiry is when the provider said the token stops working.
	// Zero when the redirect carried no expires_in.
	Expiry time.Time
	// Connected is true once a verified redirect delivered the token.
	Connected bool
}

// Expired returns true if the token has a known expiry that has passed.
func (s Session) Expired(now time.Time) bool {
	if s.Expiry.IsZero() {
		return false
	}
	return now.After(s.Expiry)
}

// LoginState tracks where the OAuth flow controller is in a login attempt.
type LoginState string

// Login states.
const (
	LoginIdle          LoginState = "idle"
	LoginRedirecting   LoginState = "redirecting"
	LoginReturnPending LoginState = "return_pending"
	LoginConnected     LoginState = "connected"
	LoginFailed        LoginState = "failed"
)

// String returns the string representation.
func (s LoginState) String() string {
	return string(s)
}
