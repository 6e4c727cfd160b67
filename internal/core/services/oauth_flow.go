package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/core/ports/driving"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Ensure OAuthFlowService implements the interface.
var _ driving.OAuthFlow = (*OAuthFlowService)(nil)

// Session indicator labels.
const (
	labelConnected    = "Connected"
	labelNotConnected = "Not connected"
)

// OAuthFlowService runs the implicit-grant login round trip.
type OAuthFlowService struct {
	config     driven.ConfigSource
	sessions   driven.SessionStore
	states     *StateTokenManager
	browser    driven.Browser
	authorizer driven.AuthorizeURLBuilder
	presenter  driven.Presenter
	now        func() time.Time

	mu    sync.Mutex
	state domain.LoginState
}

// NewOAuthFlowService creates the OAuth flow controller.
// A nil presenter discards all presentation calls.
func NewOAuthFlowService(
	config driven.ConfigSource,
	sessions driven.SessionStore,
	states *StateTokenManager,
	browser driven.Browser,
	authorizer driven.AuthorizeURLBuilder,
	presenter driven.Presenter,
) *OAuthFlowService {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	return &OAuthFlowService{
		config:     config,
		sessions:   sessions,
		states:     states,
		browser:    browser,
		authorizer: authorizer,
		presenter:  presenter,
		now:        time.Now,
		state:      domain.LoginIdle,
	}
}

// StartLogin issues a state token and navigates to the authorization dialog.
// It requires an http(s) location and a configured app id; otherwise it
// returns a *domain.SetupError and stays idle.
func (s *OAuthFlowService) StartLogin(ctx context.Context) error {
	s.presenter.ClearError()

	cfg := s.config.Config()
	location := s.browser.Location()

	if !isNetworked(location) {
		return s.setupFailed("Login will not work from a file:// location. Serve the client over http(s).", "Use server")
	}
	if cfg.AppID == "" {
		return s.setupFailed("Setup required: app_id is missing.", "Setup needed")
	}

	s.presenter.SetStatus("Redirecting…", domain.StatusIdle)

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = RedirectURIFor(location)
	}

	state, err := s.states.Issue()
	if err != nil {
		return s.loginFailed(fmt.Errorf("issue state: %w", err))
	}

	target, err := s.authorizer.AuthorizeURL(driven.AuthorizeRequest{
		ClientID:    cfg.AppID,
		RedirectURI: redirectURI,
		Scopes:      cfg.Scopes,
		State:       state,
	})
	if err != nil {
		return s.loginFailed(fmt.Errorf("build authorization url: %w", err))
	}

	logger.Info("Redirecting to authorization dialog (redirect_uri=%s, scopes=%v)", redirectURI, cfg.Scopes)
	s.setState(domain.LoginRedirecting)

	if err := s.browser.Navigate(ctx, target); err != nil {
		return s.loginFailed(fmt.Errorf("navigate: %w", err))
	}

	s.setState(domain.LoginReturnPending)
	return nil
}

// HandleReturn parses the current location's fragment once.
//
// A provider error yields *domain.OAuthProviderError and leaves the session
// disconnected. A token whose state does not match the outstanding one
// yields *domain.OAuthSecurityError and is never adopted. In both cases and
// on success the fragment is cleared so it is not processed again. A
// location with neither token nor error is a no-op.
func (s *OAuthFlowService) HandleReturn(_ context.Context) (domain.RedirectResult, error) {
	location := s.browser.Location()
	if location == nil {
		return domain.RedirectResult{Kind: domain.RedirectAbsent}, nil
	}

	params := ParseFragment(location.EscapedFragment())

	if code := params[domain.ParamError]; code != "" {
		providerErr := &domain.OAuthProviderError{
			Code:        code,
			Description: params[domain.ParamErrorDescription],
		}
		logger.Warn("Authorization declined: %s", providerErr.Reason())
		s.states.Discard()

		s.presenter.ShowError(providerErr.Error())
		s.presenter.SetStatus("Auth failed", domain.StatusBad)
		s.clearFragment(location)
		s.sessions.ClearSession()
		s.presenter.SetSessionIndicator(labelNotConnected, false)
		s.setState(domain.LoginFailed)

		return domain.RedirectResult{
			Kind:             domain.RedirectProviderError,
			ErrorCode:        providerErr.Code,
			ErrorDescription: providerErr.Description,
		}, providerErr
	}

	token := params[domain.ParamAccessToken]
	if token == "" {
		return domain.RedirectResult{Kind: domain.RedirectAbsent}, nil
	}

	if !s.states.ConsumeAndVerify(params[domain.ParamState]) {
		securityErr := &domain.OAuthSecurityError{Reason: "state mismatch"}
		logger.Warn("Rejected redirect: %v", securityErr)

		s.presenter.ShowError(securityErr.Error() + " (security check failed). Try login again.")
		s.presenter.SetStatus("Auth failed", domain.StatusBad)
		s.clearFragment(location)
		s.setState(domain.LoginFailed)

		return domain.RedirectResult{Kind: domain.RedirectAbsent}, securityErr
	}

	result := domain.RedirectResult{
		Kind:        domain.RedirectSuccess,
		AccessToken: token,
		State:       params[domain.ParamState],
		ExpiresIn:   parseExpiresIn(params[domain.ParamExpiresIn]),
	}

	session := domain.Session{AccessToken: token, Connected: true}
	if result.ExpiresIn > 0 {
		session.Expiry = s.now().Add(result.ExpiresIn)
	}
	s.sessions.SetSession(session)
	s.clearFragment(location)
	logger.Info("Connected (token=%s, expires_in=%s)", logger.Secret(token), result.ExpiresIn)

	s.presenter.ShowToken(token)
	s.presenter.SetSessionIndicator(labelConnected, true)
	s.presenter.SetStatus("Logged in", domain.StatusOK)
	s.setState(domain.LoginConnected)

	return result, nil
}

// Logout clears the local session. No request is sent to the provider, so
// the provider-side login stays active.
func (s *OAuthFlowService) Logout() {
	s.sessions.ClearSession()
	s.presenter.ShowToken("")
	s.presenter.Reset()
	s.presenter.SetSessionIndicator(labelNotConnected, false)
	s.presenter.SetStatus("Logged out", domain.StatusOK)
	s.setState(domain.LoginIdle)
	logger.Info("Logged out locally")
}

// Session returns the current session.
func (s *OAuthFlowService) Session() domain.Session {
	return s.sessions.Session()
}

// State returns where the controller is in the login round trip.
func (s *OAuthFlowService) State() domain.LoginState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *OAuthFlowService) setState(state domain.LoginState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *OAuthFlowService) setupFailed(message, status string) error {
	s.presenter.ShowError(message)
	s.presenter.SetStatus(status, domain.StatusBad)
	s.setState(domain.LoginIdle)
	return &domain.SetupError{Message: message}
}

func (s *OAuthFlowService) loginFailed(err error) error {
	s.presenter.ShowError("Login failed: " + err.Error())
	s.presenter.SetStatus("Auth failed", domain.StatusBad)
	s.setState(domain.LoginFailed)
	return err
}

// clearFragment drops the fragment while keeping the query.
func (s *OAuthFlowService) clearFragment(location *url.URL) {
	cleared := *location
	cleared.Fragment = ""
	cleared.RawFragment = ""
	s.browser.ReplaceLocation(&cleared)
}

// RedirectURIFor returns the origin and path of location, with no query or
// fragment. The provider matches redirect URIs verbatim, so this is
// recomputed for every login attempt.
func RedirectURIFor(location *url.URL) string {
	if location == nil {
		return ""
	}
	path := location.Path
	if path == "" {
		path = "/"
	}
	u := url.URL{Scheme: location.Scheme, Host: location.Host, Path: path}
	return u.String()
}

func isNetworked(location *url.URL) bool {
	if location == nil {
		return false
	}
	return (location.Scheme == "http" || location.Scheme == "https") && location.Host != ""
}

func parseExpiresIn(raw string) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
