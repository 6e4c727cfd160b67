package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/graphscope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graphscope/internal/core/domain"
)

type mockOAuthFlow struct {
	mu         sync.Mutex
	session    domain.Session
	logoutRuns int
}

func (m *mockOAuthFlow) StartLogin(context.Context) error { return nil }

func (m *mockOAuthFlow) HandleReturn(context.Context) (domain.RedirectResult, error) {
	return domain.RedirectResult{Kind: domain.RedirectAbsent}, nil
}

func (m *mockOAuthFlow) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutRuns++
	m.session = domain.Session{}
}

func (m *mockOAuthFlow) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *mockOAuthFlow) State() domain.LoginState { return domain.LoginIdle }

type mockFetch struct {
	mu      sync.Mutex
	params  []domain.FetchParams
	outcome domain.FetchOutcome
}

func (m *mockFetch) Fetch(context.Context, domain.FetchParams) (*domain.FetchResult, error) {
	return &domain.FetchResult{}, nil
}

func (m *mockFetch) Run(_ context.Context, params domain.FetchParams) domain.FetchOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = append(m.params, params)
	return m.outcome
}

type mockLogin struct {
	result domain.RedirectResult
	err    error
}

func (m *mockLogin) Run(context.Context) (domain.RedirectResult, error) {
	return m.result, m.err
}

type testPorts struct {
	*Ports
	flow  *mockOAuthFlow
	fetch *mockFetch
	login *mockLogin
}

func newTestPorts() *testPorts {
	cfg := domain.DefaultAppConfig()
	flow := &mockOAuthFlow{}
	fetch := &mockFetch{outcome: domain.FetchOutcome{Kind: domain.OutcomeSuccess}}
	login := &mockLogin{}

	return &testPorts{
		Ports: &Ports{
			OAuth:     flow,
			Fetch:     fetch,
			Login:     login,
			Config:    memory.NewConfigSource(cfg),
			Presenter: NewPresenter(),
		},
		flow:  flow,
		fetch: fetch,
		login: login,
	}
}
