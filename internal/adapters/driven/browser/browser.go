// Package browser provides the driven.Browser adapter for terminal use.
//
// A terminal client has no page of its own: the location is set by whoever
// receives the redirect (the local callback relay or a pasted URL), and
// navigation hands the URL to the system browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"sync"

	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Ensure Browser implements the interface.
var _ driven.Browser = (*Browser)(nil)

// Opener launches target in an external browser.
type Opener func(ctx context.Context, target string) error

// Browser holds the client's current location and opens the system
// browser on navigation.
type Browser struct {
	mu       sync.RWMutex
	location *url.URL

	open Opener
	out  io.Writer
}

// Option configures a Browser.
type Option func(*Browser)

// WithOpener replaces the system browser launcher.
func WithOpener(open Opener) Option {
	return func(b *Browser) {
		b.open = open
	}
}

// WithoutLaunch disables the system browser; navigation only prints.
func WithoutLaunch() Option {
	return func(b *Browser) {
		b.open = nil
	}
}

// New creates a Browser that prints every navigation target to out
// (if non-nil) and launches the system browser.
func New(out io.Writer, opts ...Option) *Browser {
	b := &Browser{
		open: OpenSystemBrowser,
		out:  out,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Location returns a copy of the current location, or nil if unset.
func (b *Browser) Location() *url.URL {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.location == nil {
		return nil
	}
	u := *b.location
	return &u
}

// SetLocation parses raw and makes it the current location.
func (b *Browser) SetLocation(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse location: %w", err)
	}
	b.ReplaceLocation(u)
	return nil
}

// ReplaceLocation swaps the current location.
func (b *Browser) ReplaceLocation(u *url.URL) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u == nil {
		b.location = nil
		return
	}
	c := *u
	b.location = &c
}

// ErrNoNavigation is returned when a browser has neither an output for the
// URL nor a launcher, so the user could never reach the target.
var ErrNoNavigation = errors.New("browser launch disabled and no output to print the URL to")

// Navigate prints target and opens it in the system browser. A launch
// failure is not fatal: the printed URL can still be opened by hand.
func (b *Browser) Navigate(ctx context.Context, target string) error {
	if b.out == nil && b.open == nil {
		return ErrNoNavigation
	}
	if b.out != nil {
		fmt.Fprintf(b.out, "Open this URL to log in:\n\n  %s\n\n", target)
	}
	if b.open == nil {
		return nil
	}
	if err := b.open(ctx, target); err != nil {
		logger.Warn("Could not open browser: %v", err)
		if b.out == nil {
			return fmt.Errorf("open browser: %w", err)
		}
	}
	return nil
}

// OpenSystemBrowser opens the default browser to the given URL.
func OpenSystemBrowser(ctx context.Context, target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "linux", "freebsd", "openbsd":
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
