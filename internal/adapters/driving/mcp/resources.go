package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for GraphScope resources.
const uriScheme = "graphscope://"

// configView is the configuration shown to clients. Only public values.
type configView struct {
	AppID              string   `json:"app_id"`
	GraphBase          string   `json:"graph_base"`
	GraphVersion       string   `json:"graph_version"`
	AuthBase           string   `json:"auth_base"`
	Scopes             []string `json:"scopes"`
	DefaultFields      string   `json:"default_fields"`
	DefaultPictureType string   `json:"default_picture_type"`
	RedirectURI        string   `json:"redirect_uri,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config",
		Name:        "config",
		Description: "Client configuration: API host, version, scopes and defaults",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}

// handleConfigResource returns the current configuration as JSON.
func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cfg := s.ports.Config.Config()

	data, err := json.MarshalIndent(configView{
		AppID:              cfg.AppID,
		GraphBase:          cfg.GraphBase,
		GraphVersion:       cfg.GraphVersion,
		AuthBase:           cfg.AuthBase,
		Scopes:             cfg.Scopes,
		DefaultFields:      cfg.DefaultFields,
		DefaultPictureType: cfg.DefaultPictureType.String(),
		RedirectURI:        cfg.RedirectURI,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
