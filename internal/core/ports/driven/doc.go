// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SessionStore: In-memory session and the outstanding OAuth state
//   - Browser: The current location and full-page navigation
//   - AuthorizeURLBuilder: Builds the implicit-grant authorization URL
//   - GraphAPI: The profile, picture and permissions endpoints
//   - Presenter: Rendering of results, errors and status
//   - ConfigSource: The current application configuration
//
// # Optional Interfaces
//
// These can be nil - the services fall back to built-in behaviour:
//
//   - StateGenerator: Anti-forgery token generation (defaults to crypto/rand)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
