package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// recordingPresenter records every presentation call in order.
type recordingPresenter struct {
	mu sync.Mutex

	calls      []string
	errors     []string
	statuses   []string
	lastKind   domain.StatusKind
	indicator  string
	connected  bool
	busy       bool
	busyCalls  []bool
	focused    []domain.InputField
	token      string
	raw        any
	profile    domain.ProviderResponse
	perms      domain.ProviderResponse
	empty      string
	resetCount int
}

var _ driven.Presenter = (*recordingPresenter)(nil)

func (p *recordingPresenter) record(call string) {
	p.calls = append(p.calls, call)
}

func (p *recordingPresenter) RenderProfile(profile, _ domain.ProviderResponse, _ []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("RenderProfile")
	p.profile = profile
}

func (p *recordingPresenter) RenderPermissions(permissions domain.ProviderResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("RenderPermissions")
	p.perms = permissions
}

func (p *recordingPresenter) RenderRawPayload(payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("RenderRawPayload")
	p.raw = payload
}

func (p *recordingPresenter) RenderEmpty(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("RenderEmpty")
	p.empty = message
}

func (p *recordingPresenter) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("ShowError")
	p.errors = append(p.errors, message)
}

func (p *recordingPresenter) ClearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("ClearError")
}

func (p *recordingPresenter) SetStatus(label string, kind domain.StatusKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SetStatus")
	p.statuses = append(p.statuses, label)
	p.lastKind = kind
}

func (p *recordingPresenter) SetSessionIndicator(label string, connected bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SetSessionIndicator")
	p.indicator = label
	p.connected = connected
}

func (p *recordingPresenter) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SetBusy")
	p.busy = busy
	p.busyCalls = append(p.busyCalls, busy)
}

func (p *recordingPresenter) FocusInput(field domain.InputField) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("FocusInput")
	p.focused = append(p.focused, field)
}

func (p *recordingPresenter) ShowToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("ShowToken")
	p.token = token
}

func (p *recordingPresenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("Reset")
	p.resetCount++
}

func (p *recordingPresenter) lastStatus() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.statuses) == 0 {
		return ""
	}
	return p.statuses[len(p.statuses)-1]
}

func (p *recordingPresenter) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// mockBrowser is a settable location that records navigations.
type mockBrowser struct {
	location    *url.URL
	navigated   []string
	navigateErr error
}

var _ driven.Browser = (*mockBrowser)(nil)

func newMockBrowser(raw string) *mockBrowser {
	b := &mockBrowser{}
	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			panic(err)
		}
		b.location = u
	}
	return b
}

func (b *mockBrowser) Location() *url.URL {
	return b.location
}

func (b *mockBrowser) Navigate(_ context.Context, target string) error {
	if b.navigateErr != nil {
		return b.navigateErr
	}
	b.navigated = append(b.navigated, target)
	return nil
}

func (b *mockBrowser) ReplaceLocation(u *url.URL) {
	b.location = u
}

// mockAuthorizer encodes the request into a predictable URL.
type mockAuthorizer struct {
	last driven.AuthorizeRequest
	err  error
}

var _ driven.AuthorizeURLBuilder = (*mockAuthorizer)(nil)

func (a *mockAuthorizer) AuthorizeURL(req driven.AuthorizeRequest) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.last = req
	q := url.Values{}
	q.Set("client_id", req.ClientID)
	q.Set("redirect_uri", req.RedirectURI)
	q.Set("response_type", "token")
	q.Set("scope", strings.Join(req.Scopes, ","))
	q.Set("state", req.State)
	return "https://auth.example.com/v24.0/dialog/oauth?" + q.Encode(), nil
}

// fixedGenerator returns a fixed state token.
type fixedGenerator struct {
	state string
	err   error
}

func (g fixedGenerator) NewState() (string, error) {
	return g.state, g.err
}

// mockGraphAPI returns canned responses, optionally blocking until released.
type mockGraphAPI struct {
	mu sync.Mutex

	me, picture, permissions          domain.ProviderResponse
	meErr, pictureErr, permissionsErr error

	// block, when set, makes every call wait for it to close or ctx to end.
	block chan struct{}

	meFields    string
	pictureType domain.PictureType
	calls       int
}

var _ driven.GraphAPI = (*mockGraphAPI)(nil)

func (m *mockGraphAPI) wait(ctx context.Context) error {
	if m.block == nil {
		return nil
	}
	select {
	case <-m.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *mockGraphAPI) count() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func (m *mockGraphAPI) Me(ctx context.Context, _, fields string) (domain.ProviderResponse, error) {
	m.count()
	m.mu.Lock()
	m.meFields = fields
	m.mu.Unlock()
	if m.meErr != nil {
		return nil, m.meErr
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.me, nil
}

func (m *mockGraphAPI) Picture(ctx context.Context, _ string, pictureType domain.PictureType) (domain.ProviderResponse, error) {
	m.count()
	m.mu.Lock()
	m.pictureType = pictureType
	m.mu.Unlock()
	if m.pictureErr != nil {
		return nil, m.pictureErr
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.picture, nil
}

func (m *mockGraphAPI) Permissions(ctx context.Context, _ string) (domain.ProviderResponse, error) {
	m.count()
	if m.permissionsErr != nil {
		return nil, m.permissionsErr
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.permissions, nil
}

func newSuccessGraphAPI() *mockGraphAPI {
	return &mockGraphAPI{
		me:      map[string]any{"id": "42", "name": "Ada"},
		picture: map[string]any{"data": map[string]any{"url": "https://cdn.example.com/p.jpg"}},
		permissions: map[string]any{"data": []any{
			map[string]any{"permission": "public_profile", "status": "granted"},
		}},
	}
}

var errBoom = errors.New("boom")
