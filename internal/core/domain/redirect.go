package domain

import "time"

// RedirectKind tags which variant a RedirectResult holds.
type RedirectKind int

const (
	// RedirectAbsent means the location carried no token and no error.
	RedirectAbsent RedirectKind = iota
	// RedirectSuccess means the provider returned an access token.
	RedirectSuccess
	// RedirectProviderError means the provider declined the authorization.
	RedirectProviderError
)

// String returns the string representation of the redirect kind.
func (k RedirectKind) String() string {
	switch k {
	case RedirectSuccess:
		return "success"
	case RedirectProviderError:
		return "provider_error"
	default:
		return "absent"
	}
}

// RedirectResult is parsed once per return from the authorization endpoint.
// Only the fields of the tagged Kind are meaningful.
type RedirectResult struct {
	Kind RedirectKind

	// Success fields.
	AccessToken string
	State       string
	ExpiresIn   time.Duration

	// ProviderError fields.
	ErrorCode        string
	ErrorDescription string
}

// Redirect fragment parameter names used by the provider.
const (
	ParamAccessToken      = "access_token"
	ParamState            = "state"
	ParamExpiresIn        = "expires_in"
	ParamError            = "error"
	ParamErrorDescription = "error_description"
)
