package mcp

import (
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
type Ports struct {
	// Fetch runs the three profile requests.
	Fetch driving.FetchOrchestrator

	// Config is exposed as a resource, without secrets.
	Config driven.ConfigSource

	// DefaultToken is used when a tool call carries no token.
	DefaultToken string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Fetch == nil {
		return ErrMissingFetchOrchestrator
	}
	if p.Config == nil {
		return ErrMissingConfig
	}
	return nil
}
