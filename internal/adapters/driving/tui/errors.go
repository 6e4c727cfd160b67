package tui

import "errors"

// ErrMissingOAuthFlow is returned when the OAuth flow is not provided.
var ErrMissingOAuthFlow = errors.New("tui: oauth flow is required")

// ErrMissingFetchOrchestrator is returned when the fetch orchestrator is not provided.
var ErrMissingFetchOrchestrator = errors.New("tui: fetch orchestrator is required")

// ErrMissingLoginRunner is returned when the login runner is not provided.
var ErrMissingLoginRunner = errors.New("tui: login runner is required")

// ErrMissingConfig is returned when the config source is not provided.
var ErrMissingConfig = errors.New("tui: config source is required")

// ErrMissingPresenter is returned when the presenter is not provided.
var ErrMissingPresenter = errors.New("tui: presenter is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
