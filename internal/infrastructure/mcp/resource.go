package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/felixgeelhaar/mcp-go"

	"github.com/scrytools/scryfall-mcp/internal/format"
	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

type serverInfoResponse struct {
	ServerVersion string   `json:"server_version"`
	BuildCommit   string   `json:"build_commit,omitempty"`
	BuildDate     string   `json:"build_date,omitempty"`
	APIBaseURL    string   `json:"api_base_url"`
	CollectionMax int      `json:"collection_max_identifiers"`
	FieldGroups   []string `json:"field_groups"`
	Documentation string   `json:"documentation"`
}

func (s *Server) registerServerResource() {
	s.mcpServer.Resource("scryfall://server").
		Name("scryfall://server").
		Description("Server version, build info, API defaults and available field groups").
		MimeType("application/json").
		Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
			resp := serverInfoResponse{
				ServerVersion: Version,
				BuildCommit:   BuildCommit,
				BuildDate:     BuildDate,
				APIBaseURL:    scryfall.DefaultBaseURL,
				CollectionMax: scryfall.MaxCollectionSize,
				FieldGroups:   format.GroupNames(),
				Documentation: "https://scryfall.com/docs/api",
			}
			data, err := json.Marshal(resp)
			if err != nil {
				return nil, err
			}
			return &mcplib.ResourceContent{
				URI:      "scryfall://server",
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}
