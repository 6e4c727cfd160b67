// Package domain defines the core entities for GraphScope.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: The in-memory access token and connection flag
//   - RedirectResult: The decoded outcome of an authorization redirect
//   - FetchParams / FetchResult: One profile fetch, from input to payloads
//   - AppConfig: Provider endpoints, scopes and client settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
