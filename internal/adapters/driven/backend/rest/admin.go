package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// summaryAnswer is the GET /api/admin/summary response body.
type summaryAnswer struct {
	Total         int `json:"total"`
	ReviewedCount int `json:"reviewed_count"`
	DirtyCount    int `json:"dirty_count"`
}

// recordAnswer is the GET /api/admin/record response body.
type recordAnswer struct {
	Index    int             `json:"index"`
	ID       json.RawMessage `json:"id"`
	Reviewed bool            `json:"reviewed"`
	Dirty    bool            `json:"dirty"`
	Document json.RawMessage `json:"document"`
	Metadata json.RawMessage `json:"metadata"`
	Total    int             `json:"total"`
}

// updatePayload is the POST /api/admin/update request body.
type updatePayload struct {
	ID       string         `json:"id"`
	Reviewed bool           `json:"reviewed"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

type updateAnswer struct {
	okEnvelope
	ID            json.RawMessage `json:"id"`
	DirtyCount    int             `json:"dirty_count"`
	ReviewedCount int             `json:"reviewed_count"`
}

type saveAnswer struct {
	okEnvelope
	DocsPath string `json:"docs_path"`
	MetaPath string `json:"meta_path"`
}

type upsertAnswer struct {
	okEnvelope
	Upserted int `json:"upserted"`
	Errors   int `json:"errors"`
}

// Summary fetches the review counters.
func (c *Client) Summary(ctx context.Context) (*domain.AdminSummary, error) {
	var answer summaryAnswer
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/admin/summary"}, &answer); err != nil {
		return nil, err
	}
	return &domain.AdminSummary{
		Total:         answer.Total,
		ReviewedCount: answer.ReviewedCount,
		DirtyCount:    answer.DirtyCount,
	}, nil
}

// Record fetches the record at index. The service clamps the index.
func (c *Client) Record(ctx context.Context, index int) (*domain.AdminRecord, error) {
	var answer recordAnswer
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/admin/record",
		query:  url.Values{"index": {strconv.Itoa(index)}},
	}, &answer)
	if err != nil {
		return nil, err
	}

	return &domain.AdminRecord{
		Index:    answer.Index,
		Total:    answer.Total,
		ID:       field(answer.ID).Value(),
		Reviewed: answer.Reviewed,
		Dirty:    answer.Dirty,
		Fields:   adminFields(asObject(answer.Metadata)),
		Text:     editorField(asObject(answer.Document)["text"]),
	}, nil
}

// Update stores an edited record.
func (c *Client) Update(
	ctx context.Context, token string, edit domain.AdminEdit,
) (*domain.AdminUpdateResult, error) {
	var answer updateAnswer
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/admin/update",
		token:  token,
		body:   buildUpdatePayload(edit),
	}, &answer)
	if err != nil {
		return nil, err
	}
	if err := answer.err(); err != nil {
		return nil, err
	}

	id := field(answer.ID).Value()
	if id == "" {
		id = edit.ID
	}
	return &domain.AdminUpdateResult{
		ID:            id,
		ReviewedCount: answer.ReviewedCount,
		DirtyCount:    answer.DirtyCount,
	}, nil
}

// Save writes every record back to the service's data files.
func (c *Client) Save(ctx context.Context, token string) (*domain.SaveResult, error) {
	var answer saveAnswer
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/admin/save", token: token}, &answer); err != nil {
		return nil, err
	}
	if err := answer.err(); err != nil {
		return nil, err
	}
	return &domain.SaveResult{DocsPath: answer.DocsPath, MetaPath: answer.MetaPath}, nil
}

// Upsert re-embeds records and pushes them to the vector index.
func (c *Client) Upsert(ctx context.Context, token string, onlyDirty bool) (*domain.UpsertResult, error) {
	var answer upsertAnswer
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/admin/upsert",
		query:  url.Values{"only_dirty": {strconv.FormatBool(onlyDirty)}},
		token:  token,
	}, &answer)
	if err != nil {
		return nil, err
	}
	if err := answer.err(); err != nil {
		return nil, err
	}
	return &domain.UpsertResult{Upserted: answer.Upserted, Errors: answer.Errors}, nil
}

// editorField reads a value the service filled with the Unknown
// sentinel; the sentinel means the value is absent.
func editorField(raw json.RawMessage) domain.Field {
	f := field(raw)
	if f.Value() == domain.Unknown {
		return domain.AbsentField()
	}
	return f
}

// adminFields reads the flattened record metadata. Empty lists are
// treated as absent because the service sends [] for both.
func adminFields(md object) domain.AdminFields {
	fields := domain.NewAdminFields()
	for _, k := range domain.AllAdminFields() {
		raw := md[string(k)]
		if k.IsList() {
			l := list(raw)
			if !l.IsPresent() {
				l = domain.AbsentList()
			}
			fields.Lists[k] = l
			continue
		}
		fields.Values[k] = editorField(raw)
	}
	return fields
}

// buildUpdatePayload converts an edit to the update body. Absent fields
// are left out; empty fields are sent as "" (or [] for lists).
func buildUpdatePayload(edit domain.AdminEdit) updatePayload {
	md := make(map[string]any)
	for _, k := range domain.AllAdminFields() {
		if k.IsList() {
			l := edit.Fields.List(k)
			switch l.State() {
			case domain.FieldPresent:
				md[string(k)] = l.Values()
			case domain.FieldEmpty:
				md[string(k)] = []string{}
			}
			continue
		}
		f := edit.Fields.Field(k)
		switch f.State() {
		case domain.FieldPresent:
			md[string(k)] = f.Value()
		case domain.FieldEmpty:
			md[string(k)] = ""
		}
	}
	return updatePayload{
		ID:       strings.TrimSpace(edit.ID),
		Reviewed: edit.Reviewed,
		Text:     edit.Text.Value(),
		Metadata: md,
	}
}
