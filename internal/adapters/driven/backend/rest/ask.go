package rest

import (
	"context"
	"encoding/json"
	"net/http"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/logger"
)

// askPayload is the POST /ask request body. Unset filters are sent as null.
type askPayload struct {
	Query      string  `json:"query"`
	City       *string `json:"city"`
	County     *string `json:"county"`
	ZipCode    *string `json:"zip_code"`
	Language   *string `json:"language"`
	FreeOnly   *bool   `json:"free_only"`
	TopK       int     `json:"top_k"`
	TopResults int     `json:"top_results"`
}

// askAnswer is the POST /ask response body. Grouped results are decoded
// into an ordered map so themes keep the order the service sent them in.
type askAnswer struct {
	ActionPlan     *string                                         `json:"action_plan"`
	GroupedResults *orderedmap.OrderedMap[string, json.RawMessage] `json:"grouped_results"`
	Counts         struct {
		TotalResults int `json:"total_results"`
		Needs        int `json:"needs"`
	} `json:"counts"`
}

// hit is one entry of a grouped_results array.
type hit struct {
	ID           json.RawMessage `json:"id"`
	ServiceID    json.RawMessage `json:"service_id"`
	Score        json.RawMessage `json:"score"`
	ModelSummary json.RawMessage `json:"model_summary"`
	Metadata     json.RawMessage `json:"metadata"`
}

func (h hit) record() domain.ResourceRecord {
	return domain.ResourceRecord{
		ExplicitID: field(h.ID),
		ServiceID:  field(h.ServiceID),
		Score:      number(h.Score),
		Summary:    field(h.ModelSummary),
		Metadata:   flattenMetadata(asObject(h.Metadata)),
	}
}

// Ask submits a query to POST /ask.
func (c *Client) Ask(
	ctx context.Context, req domain.AskRequest, onStage domain.StageFunc,
) (*domain.AskResponse, error) {
	payload := askPayload{
		Query:      req.Query,
		City:       req.Filters.City,
		County:     req.Filters.County,
		ZipCode:    req.Filters.ZipCode,
		Language:   req.Filters.Language,
		FreeOnly:   req.Filters.FreeOnly,
		TopK:       req.TopK,
		TopResults: req.TopResults,
	}

	answer := askAnswer{GroupedResults: orderedmap.New[string, json.RawMessage]()}
	err := c.do(ctx, call{
		method:  http.MethodPost,
		path:    "/ask",
		body:    payload,
		onStage: onStage,
	}, &answer)
	if err != nil {
		return nil, err
	}

	resp := &domain.AskResponse{
		Counts: domain.AskCounts{
			TotalResults: answer.Counts.TotalResults,
			Needs:        answer.Counts.Needs,
		},
	}
	if answer.ActionPlan != nil {
		resp.ActionPlan = *answer.ActionPlan
	}
	resp.Groups = decodeGroups(answer.GroupedResults)
	return resp, nil
}

// decodeGroups converts grouped_results into theme groups in key order.
// Themes whose value is not an array are skipped, as are hits that are
// not objects.
func decodeGroups(grouped *orderedmap.OrderedMap[string, json.RawMessage]) []domain.ThemeGroup {
	if grouped == nil {
		return nil
	}
	groups := make([]domain.ThemeGroup, 0, grouped.Len())
	for pair := grouped.Oldest(); pair != nil; pair = pair.Next() {
		if isNull(pair.Value) {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(pair.Value, &items); err != nil {
			logger.Debug("Skipping theme %q: not a list", pair.Key)
			continue
		}
		group := domain.ThemeGroup{Slug: pair.Key, Hits: make([]domain.ResourceRecord, 0, len(items))}
		for i, item := range items {
			var h hit
			if err := json.Unmarshal(item, &h); err != nil {
				logger.Debug("Skipping hit %d of theme %q: %v", i, pair.Key, err)
				continue
			}
			group.Hits = append(group.Hits, h.record())
		}
		groups = append(groups, group)
	}
	return groups
}
