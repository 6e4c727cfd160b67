// Package tui provides the interactive terminal client.
// It is a driving adapter: every action goes through the core services,
// which report back through the Presenter.
package tui

import (
	"context"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/core/ports/driving"
)

// LoginRunner performs one complete login round trip.
type LoginRunner interface {
	Run(ctx context.Context) (domain.RedirectResult, error)
}

// Ports aggregates everything the TUI drives.
type Ports struct {
	// OAuth holds the session and performs logout.
	OAuth driving.OAuthFlow

	// Fetch runs and presents the three profile requests.
	Fetch driving.FetchOrchestrator

	// Login runs the relay-backed login.
	Login LoginRunner

	// Config supplies the initial field list and picture size.
	Config driven.ConfigSource

	// Presenter receives the services' presentation calls. The services
	// above must have been built with it.
	Presenter *Presenter

	// ConfigUpdates delivers configuration reloads. Optional.
	ConfigUpdates <-chan messages.ConfigReloaded
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.OAuth == nil {
		return ErrMissingOAuthFlow
	}
	if p.Fetch == nil {
		return ErrMissingFetchOrchestrator
	}
	if p.Login == nil {
		return ErrMissingLoginRunner
	}
	if p.Config == nil {
		return ErrMissingConfig
	}
	if p.Presenter == nil {
		return ErrMissingPresenter
	}
	return nil
}
