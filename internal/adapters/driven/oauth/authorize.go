package oauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// Ensure AuthorizeURLBuilder implements the interface.
var _ driven.AuthorizeURLBuilder = (*AuthorizeURLBuilder)(nil)

// dialogPath is the authorization dialog below <auth-base>/<version>.
const dialogPath = "dialog/oauth"

// AuthorizeURLBuilder builds implicit-grant dialog URLs from the current
// configuration.
type AuthorizeURLBuilder struct {
	config driven.ConfigSource
}

// NewAuthorizeURLBuilder creates a builder that reads the auth host and
// API version from config on every call.
func NewAuthorizeURLBuilder(config driven.ConfigSource) *AuthorizeURLBuilder {
	return &AuthorizeURLBuilder{config: config}
}

// DialogURL returns <auth-base>/<version>/dialog/oauth.
func DialogURL(authBase, version string) (string, error) {
	base, err := url.Parse(strings.TrimRight(authBase, "/"))
	if err != nil {
		return "", fmt.Errorf("parse auth base: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("auth base %q is not an absolute URL", authBase)
	}
	return base.JoinPath(version, dialogPath).String(), nil
}

// AuthorizeURL returns the dialog URL for req with response_type=token and
// comma-joined scopes.
func (b *AuthorizeURLBuilder) AuthorizeURL(req driven.AuthorizeRequest) (string, error) {
	if req.ClientID == "" {
		return "", errors.New("client id is required")
	}
	if req.State == "" {
		return "", errors.New("state is required")
	}

	cfg := b.config.Config()
	dialog, err := DialogURL(cfg.AuthBase, cfg.GraphVersion)
	if err != nil {
		return "", err
	}

	// Scopes are passed as an option: oauth2.Config joins them with spaces,
	// the provider expects commas.
	conf := &oauth2.Config{
		ClientID:    req.ClientID,
		RedirectURL: req.RedirectURI,
		Endpoint:    oauth2.Endpoint{AuthURL: dialog},
	}

	return conf.AuthCodeURL(req.State,
		oauth2.SetAuthURLParam("response_type", "token"),
		oauth2.SetAuthURLParam("scope", strings.Join(req.Scopes, ",")),
	), nil
}
