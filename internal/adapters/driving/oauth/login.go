package oauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/core/ports/driving"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// portFallbackRange is how many ports above the configured one are tried
// when it is taken.
const portFallbackRange = 20

// ErrNoRedirect is returned by Paste when no redirect URL was entered.
var ErrNoRedirect = errors.New("no redirect URL entered")

// LocationSetter receives the redirect location once the relay or the
// user hands it over.
type LocationSetter interface {
	SetLocation(raw string) error
}

// Login drives one implicit-grant round trip from a terminal.
type Login struct {
	flow     driving.OAuthFlow
	location LocationSetter
	config   driven.ConfigSource
}

// NewLogin creates a login runner.
func NewLogin(flow driving.OAuthFlow, location LocationSetter, config driven.ConfigSource) *Login {
	return &Login{flow: flow, location: location, config: config}
}

// Run starts the callback relay, opens the authorization dialog and waits
// for the redirect, bounded by the configured login timeout.
func (l *Login) Run(ctx context.Context) (domain.RedirectResult, error) {
	cfg := l.config.Config()

	server, err := startRelay(cfg.CallbackPort)
	if err != nil {
		return domain.RedirectResult{}, err
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Warn("Stop callback relay: %v", err)
		}
	}()

	redirectURI := server.RedirectURI()
	if cfg.RedirectURI == "" && cfg.CallbackPort != 0 && server.Port() != cfg.CallbackPort {
		logger.Warn("Port %d is busy; using %s, which must also be registered with the provider", cfg.CallbackPort, redirectURI)
	}

	if err := l.location.SetLocation(redirectURI); err != nil {
		return domain.RedirectResult{}, err
	}
	if err := l.flow.StartLogin(ctx); err != nil {
		return domain.RedirectResult{}, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.LoginTimeout)
	defer cancel()

	fragment, err := server.WaitForFragment(waitCtx)
	if err != nil {
		return domain.RedirectResult{}, err
	}

	if err := l.location.SetLocation(redirectURI + "#" + fragment); err != nil {
		return domain.RedirectResult{}, err
	}
	return l.flow.HandleReturn(ctx)
}

// Paste opens the authorization dialog and reads the redirect URL the
// user copies from the address bar. A bare fragment is accepted too.
func (l *Login) Paste(ctx context.Context, in io.Reader, prompt io.Writer) (domain.RedirectResult, error) {
	cfg := l.config.Config()

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = fmt.Sprintf("http://localhost:%d%s", cfg.CallbackPort, CallbackPath)
	}
	if err := l.location.SetLocation(redirectURI); err != nil {
		return domain.RedirectResult{}, err
	}
	if err := l.flow.StartLogin(ctx); err != nil {
		return domain.RedirectResult{}, err
	}

	if prompt != nil {
		fmt.Fprint(prompt, "Paste the URL you were redirected to: ")
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxFragmentSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return domain.RedirectResult{}, fmt.Errorf("read redirect: %w", err)
		}
		return domain.RedirectResult{}, ErrNoRedirect
	}

	pasted := strings.TrimSpace(scanner.Text())
	if pasted == "" {
		return domain.RedirectResult{}, ErrNoRedirect
	}
	if !strings.Contains(pasted, "://") {
		pasted = redirectURI + "#" + trimHash(pasted)
	}

	if err := l.location.SetLocation(pasted); err != nil {
		return domain.RedirectResult{}, err
	}
	return l.flow.HandleReturn(ctx)
}

// startRelay starts a callback server on port, moving up to
// portFallbackRange ports higher when it is taken.
func startRelay(port int) (*CallbackServer, error) {
	server := NewCallbackServer(port)
	err := server.Start()
	if err == nil || port == 0 {
		return server, err
	}

	fallback, findErr := FindAvailablePort(port+1, port+portFallbackRange)
	if findErr != nil {
		return nil, fmt.Errorf("start callback relay: %w", err)
	}
	server = NewCallbackServer(fallback)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("start callback relay: %w", err)
	}
	return server, nil
}
