package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/compass/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for compass resources.
	uriScheme = "compass://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.History != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "history",
			Name:        "history",
			Description: "Recent queries, newest first",
			MIMEType:    "application/json",
		}, s.handleHistoryResource)
	}

	if s.ports.Admin != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "records/{position}",
			Name:        "admin-record",
			Description: "A resource record from the review store by 1-based position",
			MIMEType:    "application/json",
		}, s.handleRecordResource)
	}
}

type historyInfo struct {
	Query        string    `json:"query"`
	Filters      string    `json:"filters,omitempty"`
	TotalResults int       `json:"total_results"`
	ThemeCount   int       `json:"theme_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// handleHistoryResource returns the recent queries.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.History.Recent(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]historyInfo, len(records))
	for i := range records {
		infos[i] = historyInfo{
			Query:        records[i].Query,
			Filters:      records[i].Filters.Summary(),
			TotalResults: records[i].TotalResults,
			ThemeCount:   records[i].ThemeCount,
			CreatedAt:    records[i].CreatedAt,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

type recordInfo struct {
	Position string            `json:"position"`
	ID       string            `json:"id"`
	Reviewed bool              `json:"reviewed"`
	Dirty    bool              `json:"dirty"`
	Fields   map[string]string `json:"fields"`
	Text     string            `json:"text"`
}

// handleRecordResource returns one admin record.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// URI: compass://records/{position}
	pos := extractPosition(req.Params.URI)
	if pos < 1 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Admin.Jump(ctx, pos)
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}

	info := recordInfo{
		Position: rec.Position(),
		ID:       rec.ID,
		Reviewed: rec.Reviewed,
		Dirty:    rec.Dirty,
		Fields:   make(map[string]string),
		Text:     rec.Text.DisplayOr(""),
	}
	for _, k := range domain.AllAdminFields() {
		info.Fields[string(k)] = rec.Fields.EditorText(k)
	}

	return jsonResult(req.Params.URI, info)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPosition extracts the position from a URI like compass://records/{position}.
// It returns 0 when the URI does not name a position.
func extractPosition(uri string) int {
	const prefix = uriScheme + "records/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	pos, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return 0
	}
	return pos
}
