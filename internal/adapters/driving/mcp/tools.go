package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/services"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query      string `json:"query" jsonschema:"free-text description of the person's situation and needs"`
	City       string `json:"city,omitempty" jsonschema:"only resources in this city"`
	County     string `json:"county,omitempty" jsonschema:"only resources in this county"`
	ZipCode    string `json:"zip_code,omitempty" jsonschema:"only resources in this ZIP code"`
	Language   string `json:"language,omitempty" jsonschema:"only resources offered in this language"`
	FreeOnly   bool   `json:"free_only,omitempty" jsonschema:"only free resources"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"candidates retrieved per need (default from settings)"`
	TopResults int    `json:"top_results,omitempty" jsonschema:"resources returned per theme (default from settings)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Status     string        `json:"status"`
	Summary    string        `json:"summary,omitempty"`
	Themes     []ThemeOutput `json:"themes"`
	ActionPlan string        `json:"action_plan,omitempty"`
	Citations  []CiteOutput  `json:"citations,omitempty"`
}

// ThemeOutput is one theme with its matched resources.
type ThemeOutput struct {
	Slug      string           `json:"slug"`
	Label     string           `json:"label"`
	Resources []ResourceOutput `json:"resources"`
}

// ResourceOutput represents a single matched resource.
type ResourceOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Organization string   `json:"organization,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
	Hours        string   `json:"hours"`
	Fees         string   `json:"fees"`
	Languages    []string `json:"languages,omitempty"`
	MapsURL      string   `json:"maps_url,omitempty"`
}

// CiteOutput is a citation found in the action plan.
type CiteOutput struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Resolved bool   `json:"resolved"`
}

// AdminSummaryInput is the input schema for the admin_summary tool.
type AdminSummaryInput struct{}

// AdminSummaryOutput is the output schema for the admin_summary tool.
type AdminSummaryOutput struct {
	Total    int `json:"total"`
	Reviewed int `json:"reviewed"`
	Dirty    int `json:"dirty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Match community resources to a described situation and return an action plan",
	}, s.handleAsk)

	if s.ports.Admin != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "admin_summary",
			Description: "Report how many resource records are reviewed and awaiting reindex",
		}, s.handleAdminSummary)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	req := s.ports.Ask.NewRequest(input.Query)
	if req.Query == "" {
		return nil, AskOutput{}, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	applyFilters(&req, input)

	carousel := services.NewCarouselController(nil)
	session := services.NewResultSession(
		carousel,
		services.NewCitationResolver(carousel, s.ports.Sanitizer),
		services.NewProgressOverlay(nil),
	)
	gen := session.Begin()

	resp, err := s.ports.Ask.Ask(ctx, req, func(stage domain.RequestStage) {
		session.Stage(gen, stage)
	})
	if err != nil {
		session.Fail(gen, err) //nolint:errcheck // generation is current
		return nil, AskOutput{}, fmt.Errorf("ask: %w", err)
	}

	out, err := session.Complete(gen, resp)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, buildAskOutput(session, out), nil
}

// applyFilters copies the filters set in input onto req.
func applyFilters(req *domain.AskRequest, input AskInput) {
	set := func(v string, dst **string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(input.City, &req.Filters.City)
	set(input.County, &req.Filters.County)
	set(input.ZipCode, &req.Filters.ZipCode)
	set(input.Language, &req.Filters.Language)
	if input.FreeOnly {
		free := true
		req.Filters.FreeOnly = &free
	}
	if input.TopK > 0 {
		req.TopK = input.TopK
	}
	if input.TopResults > 0 {
		req.TopResults = input.TopResults
	}
}

func buildAskOutput(session *services.ResultSession, out services.Outcome) AskOutput {
	output := AskOutput{
		Status:     out.Status,
		Summary:    out.ResultCount,
		Themes:     []ThemeOutput{},
		ActionPlan: out.Narrative.PlainText(),
	}

	state := session.Carousel().State()
	for _, theme := range state.Themes {
		t := ThemeOutput{Slug: theme.Slug, Label: theme.Label, Resources: []ResourceOutput{}}
		for _, slide := range state.Slides[theme.SlideStart:theme.End()] {
			t.Resources = append(t.Resources, toResourceOutput(slide.Content))
		}
		output.Themes = append(output.Themes, t)
	}

	seen := make(map[string]bool)
	for _, seg := range out.Narrative.CitationSegments() {
		if seen[seg.CitationID] {
			continue
		}
		seen[seg.CitationID] = true
		output.Citations = append(output.Citations, CiteOutput{
			ID:       seg.CitationID,
			Label:    seg.Label,
			Resolved: seg.Resolved,
		})
	}
	return output
}

func toResourceOutput(rec domain.ResourceRecord) ResourceOutput {
	md := rec.Metadata
	return ResourceOutput{
		ID:           rec.ID(),
		Name:         rec.DisplayName(),
		Organization: md.Organization.DisplayOr(""),
		Score:        rec.Score,
		Summary:      rec.Summary.DisplayOr(""),
		Address:      md.Address(),
		Phone:        md.Phone.Display(),
		Website:      md.Website.Display(),
		Hours:        md.Hours.Display(),
		Fees:         md.Fees.Display(),
		Languages:    md.Languages.Values(),
		MapsURL:      md.MapsURL(),
	}
}

// handleAdminSummary handles the admin_summary tool invocation.
func (s *Server) handleAdminSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ AdminSummaryInput,
) (*mcp.CallToolResult, AdminSummaryOutput, error) {
	summary, err := s.ports.Admin.Summary(ctx)
	if err != nil {
		return nil, AdminSummaryOutput{}, fmt.Errorf("admin summary: %w", err)
	}
	return nil, AdminSummaryOutput{
		Total:    summary.Total,
		Reviewed: summary.ReviewedCount,
		Dirty:    summary.DirtyCount,
	}, nil
}
