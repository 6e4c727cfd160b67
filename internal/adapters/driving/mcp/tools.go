package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// FetchProfileInput is the input schema for the fetch_profile tool.
type FetchProfileInput struct {
	AccessToken string `json:"access_token,omitempty" jsonschema:"user access token; defaults to the server's token"`
	Fields      string `json:"fields,omitempty" jsonschema:"comma-separated /me fields (default from config)"`
	PictureType string `json:"picture_type,omitempty" jsonschema:"one of small, normal, large, square"`
}

// FetchProfileOutput is the output schema for the fetch_profile tool.
type FetchProfileOutput struct {
	Profile         any      `json:"profile"`
	Picture         any      `json:"picture"`
	Permissions     any      `json:"permissions"`
	PictureURL      string   `json:"picture_url,omitempty"`
	Granted         []string `json:"granted"`
	RequestedFields []string `json:"requested_fields"`
	NoResults       bool     `json:"no_results"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_profile",
		Description: "Fetch /me, /me/picture and /me/permissions for an access token",
	}, s.handleFetchProfile)
}

// handleFetchProfile handles the fetch_profile tool invocation.
func (s *Server) handleFetchProfile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchProfileInput,
) (*mcp.CallToolResult, FetchProfileOutput, error) {
	cfg := s.ports.Config.Config()

	params := domain.FetchParams{
		Token:       input.AccessToken,
		Fields:      input.Fields,
		PictureType: domain.PictureType(input.PictureType),
	}
	if params.Token == "" {
		params.Token = s.ports.DefaultToken
	}
	if params.Fields == "" {
		params.Fields = cfg.DefaultFields
	}

	result, err := s.ports.Fetch.Fetch(ctx, params)
	if err != nil {
		logger.Debug("fetch_profile failed: %v", err)
		return nil, FetchProfileOutput{}, toolError(err)
	}

	output := FetchProfileOutput{
		Profile:         result.Profile,
		Picture:         result.Picture,
		Permissions:     result.Permissions,
		PictureURL:      domain.PictureURLOf(result.Picture),
		Granted:         []string{},
		RequestedFields: result.RequestedFields,
		NoResults:       result.NoResults,
	}
	for _, p := range domain.PermissionsOf(result.Permissions) {
		if p.Granted() {
			output.Granted = append(output.Granted, p.Permission)
		}
	}

	return nil, output, nil
}

// toolError keeps the user-facing message of a fetch failure.
func toolError(err error) error {
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		return errors.New(fetchErr.Message)
	}
	return err
}
