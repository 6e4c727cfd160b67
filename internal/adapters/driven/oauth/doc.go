// Package oauth provides the implicit-grant authorization URL builder and
// the state token generator used by the login flow.
package oauth
