package driven

// StateGenerator produces anti-forgery state tokens for authorization requests.
type StateGenerator interface {
	// NewState returns a fresh, unpredictable token.
	NewState() (string, error)
}
