// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets an assistant fetch the profile behind an access token and read
// the non-secret client configuration.
package mcp

import "errors"

// ErrMissingFetchOrchestrator is returned when the fetch orchestrator is not provided.
var ErrMissingFetchOrchestrator = errors.New("mcp: fetch orchestrator is required")

// ErrMissingConfig is returned when the config source is not provided.
var ErrMissingConfig = errors.New("mcp: config source is required")
