package cli

import (
	"context"
	"errors"
	"io"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/core/ports/driving"
)

// ErrNotWired is returned when a command runs before SetWiring.
var ErrNotWired = errors.New("services not configured")

// Options are the per-command inputs to the wiring.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Presenter receives every presentation call of the services.
	Presenter driven.Presenter

	// Out receives the authorization URL on login. Nil keeps it silent.
	Out io.Writer

	// NoBrowser prints the authorization URL without launching a browser.
	NoBrowser bool
}

// ConfigStore is the configuration surface the config commands need.
type ConfigStore interface {
	driven.ConfigSource
	Get(key string) (any, bool)
	Set(key, value string) error
	Marshal() ([]byte, error)
	Path() string
}

// LoginRunner performs a login round trip from the terminal.
type LoginRunner interface {
	Run(ctx context.Context) (domain.RedirectResult, error)
	Paste(ctx context.Context, in io.Reader, prompt io.Writer) (domain.RedirectResult, error)
}

// Services are the wired components a command drives.
type Services struct {
	OAuth  driving.OAuthFlow
	Fetch  driving.FetchOrchestrator
	Login  LoginRunner
	Config ConfigStore

	// ConfigKeys lists the keys accepted by config set.
	ConfigKeys []string

	// WatchConfig streams configuration reloads. Optional.
	WatchConfig func(ctx context.Context) (<-chan messages.ConfigReloaded, error)
}

// Wiring builds the services for one command.
type Wiring func(opts Options) (*Services, error)

var wiring Wiring

// SetWiring installs the function commands use to build their services.
func SetWiring(w Wiring) {
	wiring = w
}

func buildServices(opts Options) (*Services, error) {
	if wiring == nil {
		return nil, ErrNotWired
	}
	if opts.ConfigDir == "" {
		opts.ConfigDir = configDir
	}
	return wiring(opts)
}
