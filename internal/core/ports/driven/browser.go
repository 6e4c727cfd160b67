package driven

import (
	"context"
	"net/url"
)

// Browser is the page the client runs in: it has a location that the
// provider redirects back to, and it can navigate away to another URL.
type Browser interface {
	// Location returns the current location, including any fragment.
	// Nil means the client has no addressable location.
	Location() *url.URL

	// Navigate performs a full navigation to target.
	// The current page does not resume after this call succeeds; the
	// outcome arrives as a new location.
	Navigate(ctx context.Context, target string) error

	// ReplaceLocation swaps the current location without navigating,
	// e.g. to drop a processed fragment.
	ReplaceLocation(u *url.URL)
}
