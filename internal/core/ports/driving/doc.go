// Package driving defines what the CLI, TUI and MCP adapters call into:
// the login flow and the profile fetch.
//
// Implementations live in internal/core/services.
package driving
