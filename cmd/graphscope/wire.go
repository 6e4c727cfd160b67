package main

import (
	"context"

	"github.com/custodia-labs/graphscope/internal/adapters/driven/browser"
	"github.com/custodia-labs/graphscope/internal/adapters/driven/config/file"
	"github.com/custodia-labs/graphscope/internal/adapters/driven/graph"
	authz "github.com/custodia-labs/graphscope/internal/adapters/driven/oauth"
	"github.com/custodia-labs/graphscope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/cli"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/oauth"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/graphscope/internal/core/services"
)

// wire builds the services of one command. Sessions live in memory for
// the lifetime of the process.
func wire(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	cfg := store.Config()

	var browserOpts []browser.Option
	if opts.NoBrowser || !cfg.OpenBrowser {
		browserOpts = append(browserOpts, browser.WithoutLaunch())
	}
	location := browser.New(opts.Out, browserOpts...)

	api := graph.NewClient(store, graph.WithRateLimiter(graph.NewRateLimiter(cfg.RequestsPerSecond)))
	sessions := memory.NewSessionStore()
	states := services.NewStateTokenManager(sessions, authz.StateGenerator{})

	flow := services.NewOAuthFlowService(
		store,
		sessions,
		states,
		location,
		authz.NewAuthorizeURLBuilder(store),
		opts.Presenter,
	)

	return &cli.Services{
		OAuth:       flow,
		Fetch:       services.NewFetchService(api, store, sessions, opts.Presenter),
		Login:       oauth.NewLogin(flow, location, store),
		Config:      store,
		ConfigKeys:  file.Keys(),
		WatchConfig: watchConfig(store),
	}, nil
}

// watchConfig adapts file reloads to the messages the TUI consumes.
func watchConfig(store *file.ConfigStore) func(ctx context.Context) (<-chan messages.ConfigReloaded, error) {
	return func(ctx context.Context) (<-chan messages.ConfigReloaded, error) {
		reloads, err := store.Watch(ctx)
		if err != nil {
			return nil, err
		}

		out := make(chan messages.ConfigReloaded)
		go func() {
			defer close(out)
			for r := range reloads {
				select {
				case out <- messages.ConfigReloaded{Config: r.Config, Err: r.Err}:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out, nil
	}
}
