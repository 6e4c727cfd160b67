package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphscope/internal/adapters/driven/config/file"
	"github.com/custodia-labs/graphscope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/services"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// fakeGraph is a driven.GraphAPI returning canned payloads.
type fakeGraph struct {
	mu     sync.Mutex
	token  string
	fields string
	meErr  error
	me     domain.ProviderResponse
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{me: map[string]any{"id": "42", "name": "Ada"}}
}

func (g *fakeGraph) Me(_ context.Context, token, fields string) (domain.ProviderResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
	g.fields = fields
	if g.meErr != nil {
		return nil, g.meErr
	}
	return g.me, nil
}

func (g *fakeGraph) Picture(context.Context, string, domain.PictureType) (domain.ProviderResponse, error) {
	return map[string]any{"data": map[string]any{"url": "https://cdn.example.com/p.jpg"}}, nil
}

func (g *fakeGraph) Permissions(context.Context, string) (domain.ProviderResponse, error) {
	return map[string]any{"data": []any{
		map[string]any{"permission": "public_profile", "status": "granted"},
	}}, nil
}

// fakeLogin is a LoginRunner with a fixed result.
type fakeLogin struct {
	result domain.RedirectResult
	err    error
	pasted string
	runs   int
}

func (l *fakeLogin) Run(context.Context) (domain.RedirectResult, error) {
	l.runs++
	return l.result, l.err
}

func (l *fakeLogin) Paste(_ context.Context, in io.Reader, _ io.Writer) (domain.RedirectResult, error) {
	data, _ := io.ReadAll(in)
	l.pasted = strings.TrimSpace(string(data))
	return l.result, l.err
}

type testEnv struct {
	graph *fakeGraph
	login *fakeLogin
	store *file.ConfigStore
	opts  []Options
}

// useTestServices installs a wiring backed by the real fetch service, a
// fake API and a config store in a temp dir.
func useTestServices(t *testing.T) *testEnv {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir(), file.WithEnvironment(map[string]string{}))
	require.NoError(t, err)

	env := &testEnv{graph: newFakeGraph(), login: &fakeLogin{}, store: store}
	SetWiring(func(opts Options) (*Services, error) {
		env.opts = append(env.opts, opts)
		sessions := memory.NewSessionStore()
		return &Services{
			Fetch:      services.NewFetchService(env.graph, store, sessions, opts.Presenter),
			Login:      env.login,
			Config:     store,
			ConfigKeys: file.Keys(),
		}, nil
	})

	t.Cleanup(func() { SetWiring(nil) })
	return env
}

// run executes the root command with args and captures both streams.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// resetFlags restores flag variables; cobra keeps them between runs.
func resetFlags() {
	verbose, configDir = false, ""
	fetchToken, fetchFields, fetchPicture = "", "", ""
	fetchJSON, fetchRaw = false, false
	loginFetch, loginPaste, loginNoBrowser, loginPrintToken = false, false, false, false
	mcpHTTPAddr = ""
	logger.SetVerbose(false)
}
