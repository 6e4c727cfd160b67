package driven

// AuthorizeRequest describes one implicit-grant authorization request.
type AuthorizeRequest struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
	State       string
}

// AuthorizeURLBuilder builds the provider's authorization dialog URL.
type AuthorizeURLBuilder interface {
	// AuthorizeURL returns the URL to navigate to for req.
	AuthorizeURL(req AuthorizeRequest) (string, error)
}
