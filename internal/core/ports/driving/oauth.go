package driving

import (
	"context"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// OAuthFlow drives the implicit-grant login round trip.
type OAuthFlow interface {
	// StartLogin issues a state token and navigates to the authorization dialog.
	// It is terminal for the current page: the outcome is only observed by a
	// later HandleReturn once the provider redirects back.
	StartLogin(ctx context.Context) error

	// HandleReturn inspects the current location's fragment once and adopts
	// a verified token into the session.
	HandleReturn(ctx context.Context) (domain.RedirectResult, error)

	// Logout drops the local token. The provider-side session is untouched.
	Logout()

	// Session returns the current session.
	Session() domain.Session

	// State returns where the controller is in the login round trip.
	State() domain.LoginState
}
