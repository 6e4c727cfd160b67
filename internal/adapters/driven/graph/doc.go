// Package graph provides the HTTP client for the social-graph API.
//
// Every call is a GET against <graph-base>/<version>/<path> carrying the
// access token as a query parameter. Response bodies are read as text and
// decoded as JSON when possible; failures come back as *domain.APIError.
package graph
