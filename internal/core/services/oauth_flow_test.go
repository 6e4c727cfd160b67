package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphscope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graphscope/internal/core/domain"
)

type flowFixture struct {
	svc        *OAuthFlowService
	store      *memory.SessionStore
	config     *memory.ConfigSource
	browser    *mockBrowser
	authorizer *mockAuthorizer
	presenter  *recordingPresenter
}

func newFlowFixture(location string) *flowFixture {
	cfg := domain.DefaultAppConfig()
	cfg.AppID = "1234"

	f := &flowFixture{
		store:      memory.NewSessionStore(),
		config:     memory.NewConfigSource(cfg),
		browser:    newMockBrowser(location),
		authorizer: &mockAuthorizer{},
		presenter:  &recordingPresenter{},
	}
	states := NewStateTokenManager(f.store, nil)
	f.svc = NewOAuthFlowService(f.config, f.store, states, f.browser, f.authorizer, f.presenter)
	return f
}

func TestNewOAuthFlowService_NilPresenter(t *testing.T) {
	store := memory.NewSessionStore()
	svc := NewOAuthFlowService(
		memory.NewConfigSource(domain.DefaultAppConfig()),
		store,
		NewStateTokenManager(store, nil),
		newMockBrowser("http://localhost:8765/callback"),
		&mockAuthorizer{},
		nil,
	)
	require.NotNil(t, svc)
	assert.Equal(t, domain.LoginIdle, svc.State())
	assert.False(t, svc.Session().Connected)
}

func TestOAuthFlowService_StartLogin(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback?x=1#old")

	err := f.svc.StartLogin(context.Background())
	require.NoError(t, err)

	require.Len(t, f.browser.navigated, 1)
	target, err := url.Parse(f.browser.navigated[0])
	require.NoError(t, err)

	q := target.Query()
	assert.Equal(t, "1234", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8765/callback", q.Get("redirect_uri"))
	assert.Equal(t, "token", q.Get("response_type"))
	assert.Equal(t, "public_profile", q.Get("scope"))

	stored, ok := f.store.TakeValue(StateKey)
	require.True(t, ok)
	assert.Equal(t, stored, q.Get("state"))

	assert.Equal(t, domain.LoginReturnPending, f.svc.State())
	assert.Contains(t, f.presenter.statuses, "Redirecting…")
}

func TestOAuthFlowService_StartLogin_RedirectOverride(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback")
	f.config.Update(func(c *domain.AppConfig) { c.RedirectURI = "https://tunnel.example.com/cb" })

	require.NoError(t, f.svc.StartLogin(context.Background()))
	assert.Equal(t, "https://tunnel.example.com/cb", f.authorizer.last.RedirectURI)
}

func TestOAuthFlowService_StartLogin_SetupErrors(t *testing.T) {
	tests := []struct {
		name       string
		location   string
		appID      string
		wantStatus string
	}{
		{name: "file location", location: "file:///tmp/index.html", appID: "1234", wantStatus: "Use server"},
		{name: "no location", location: "", appID: "1234", wantStatus: "Use server"},
		{name: "missing app id", location: "http://localhost:8765/callback", appID: "", wantStatus: "Setup needed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(tt.location)
			f.config.Update(func(c *domain.AppConfig) { c.AppID = tt.appID })

			err := f.svc.StartLogin(context.Background())
			require.Error(t, err)

			var setupErr *domain.SetupError
			assert.ErrorAs(t, err, &setupErr)
			assert.ErrorIs(t, err, domain.ErrSetupRequired)
			assert.Equal(t, tt.wantStatus, f.presenter.lastStatus())
			assert.Empty(t, f.browser.navigated)
			assert.Equal(t, domain.LoginIdle, f.svc.State())

			_, ok := f.store.TakeValue(StateKey)
			assert.False(t, ok, "no state should be issued")
		})
	}
}

func TestOAuthFlowService_StartLogin_NavigateFails(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback")
	f.browser.navigateErr = errBoom

	err := f.svc.StartLogin(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, domain.LoginFailed, f.svc.State())
	assert.Equal(t, "Auth failed", f.presenter.lastStatus())
}

func TestOAuthFlowService_HandleReturn_Success(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback?keep=1#access_token=TOKEN&state=GOOD&expires_in=3600")
	f.store.PutValue(StateKey, "GOOD")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	result, err := f.svc.HandleReturn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RedirectSuccess, result.Kind)
	assert.Equal(t, "TOKEN", result.AccessToken)
	assert.Equal(t, time.Hour, result.ExpiresIn)

	session := f.svc.Session()
	assert.True(t, session.Connected)
	assert.Equal(t, "TOKEN", session.AccessToken)
	assert.Equal(t, now.Add(time.Hour), session.Expiry)

	assert.Empty(t, f.browser.location.Fragment)
	assert.Equal(t, "keep=1", f.browser.location.RawQuery)
	assert.Equal(t, "TOKEN", f.presenter.token)
	assert.True(t, f.presenter.connected)
	assert.Equal(t, "Connected", f.presenter.indicator)
	assert.Equal(t, "Logged in", f.presenter.lastStatus())
	assert.Equal(t, domain.LoginConnected, f.svc.State())
}

func TestOAuthFlowService_HandleReturn_StateMismatch(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback#access_token=T&state=BAD")
	f.store.PutValue(StateKey, "GOOD")

	result, err := f.svc.HandleReturn(context.Background())
	require.Error(t, err)

	var secErr *domain.OAuthSecurityError
	require.ErrorAs(t, err, &secErr)
	assert.ErrorIs(t, err, domain.ErrStateMismatch)
	assert.Equal(t, domain.RedirectAbsent, result.Kind)

	assert.False(t, f.svc.Session().Connected)
	assert.Empty(t, f.svc.Session().AccessToken)
	assert.Empty(t, f.presenter.token)
	assert.Empty(t, f.browser.location.Fragment)
	assert.Equal(t, "Auth failed", f.presenter.lastStatus())
	require.NotEmpty(t, f.presenter.errors)
	assert.Contains(t, f.presenter.errors[0], "security check failed")

	_, ok := f.store.TakeValue(StateKey)
	assert.False(t, ok, "state should be consumed")
}

func TestOAuthFlowService_HandleReturn_MismatchKeepsSession(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback#access_token=NEW&state=BAD")
	f.store.SetSession(domain.Session{AccessToken: "OLD", Connected: true})
	f.store.PutValue(StateKey, "GOOD")

	_, err := f.svc.HandleReturn(context.Background())
	require.Error(t, err)
	assert.Equal(t, "OLD", f.svc.Session().AccessToken)
}

func TestOAuthFlowService_HandleReturn_NoOutstandingState(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback#access_token=T&state=S")

	_, err := f.svc.HandleReturn(context.Background())
	assert.ErrorIs(t, err, domain.ErrStateMismatch)
	assert.False(t, f.svc.Session().Connected)
}

func TestOAuthFlowService_HandleReturn_ProviderError(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback#error=access_denied&error_description=Permissions%20error")
	f.store.SetSession(domain.Session{AccessToken: "OLD", Connected: true})
	f.store.PutValue(StateKey, "OUTSTANDING")

	result, err := f.svc.HandleReturn(context.Background())
	require.Error(t, err)

	_, pending := f.store.TakeValue(StateKey)
	assert.False(t, pending, "declined login leaves no state token behind")

	var provErr *domain.OAuthProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "access_denied", provErr.Code)
	assert.Equal(t, "Permissions error", provErr.Description)
	assert.ErrorIs(t, err, domain.ErrAuthorizationDenied)

	assert.Equal(t, domain.RedirectProviderError, result.Kind)
	assert.Equal(t, "access_denied", result.ErrorCode)
	assert.False(t, f.svc.Session().Connected)
	assert.Empty(t, f.browser.location.Fragment)
	assert.Equal(t, "Not connected", f.presenter.indicator)
	assert.Equal(t, "Auth failed", f.presenter.lastStatus())
	assert.Equal(t, domain.LoginFailed, f.svc.State())
}

func TestOAuthFlowService_HandleReturn_Absent(t *testing.T) {
	tests := []struct {
		name     string
		location string
	}{
		{name: "no fragment", location: "http://localhost:8765/callback"},
		{name: "unrelated fragment", location: "http://localhost:8765/callback#section"},
		{name: "state only", location: "http://localhost:8765/callback#state=S"},
		{name: "no location", location: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(tt.location)

			result, err := f.svc.HandleReturn(context.Background())
			require.NoError(t, err)
			assert.Equal(t, domain.RedirectAbsent, result.Kind)
			assert.Zero(t, f.presenter.callCount())
			assert.Equal(t, domain.LoginIdle, f.svc.State())
		})
	}
}

func TestOAuthFlowService_RoundTrip(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback")

	require.NoError(t, f.svc.StartLogin(context.Background()))
	state := f.authorizer.last.State

	back, err := url.Parse("http://localhost:8765/callback#access_token=TOKEN&state=" + url.QueryEscape(state))
	require.NoError(t, err)
	f.browser.location = back

	result, err := f.svc.HandleReturn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RedirectSuccess, result.Kind)
	assert.True(t, f.svc.Session().Connected)

	// replaying the same fragment fails because the state was consumed
	f.browser.location = back
	_, err = f.svc.HandleReturn(context.Background())
	assert.ErrorIs(t, err, domain.ErrStateMismatch)
}

func TestOAuthFlowService_Logout(t *testing.T) {
	f := newFlowFixture("http://localhost:8765/callback")
	f.store.SetSession(domain.Session{AccessToken: "TOKEN", Connected: true})

	f.svc.Logout()

	assert.False(t, f.svc.Session().Connected)
	assert.Empty(t, f.svc.Session().AccessToken)
	assert.Empty(t, f.presenter.token)
	assert.Equal(t, 1, f.presenter.resetCount)
	assert.False(t, f.presenter.connected)
	assert.Equal(t, "Logged out", f.presenter.lastStatus())
	assert.Equal(t, domain.LoginIdle, f.svc.State())
}

func TestRedirectURIFor(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "strips query and fragment", location: "http://localhost:8765/callback?a=1#b=2", want: "http://localhost:8765/callback"},
		{name: "root path", location: "https://example.com", want: "https://example.com/"},
		{name: "nested path", location: "https://example.com/app/index.html", want: "https://example.com/app/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.want, RedirectURIFor(u))
		})
	}

	assert.Empty(t, RedirectURIFor(nil))
}

func TestParseExpiresIn(t *testing.T) {
	assert.Equal(t, 90*time.Second, parseExpiresIn("90"))
	assert.Zero(t, parseExpiresIn(""))
	assert.Zero(t, parseExpiresIn("abc"))
	assert.Zero(t, parseExpiresIn("-5"))
}
