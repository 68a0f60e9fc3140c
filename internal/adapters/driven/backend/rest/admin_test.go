package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestClient_Summary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/summary", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-Admin-Token"))
		writeJSON(t, w, `{"total": 120, "reviewed_count": 7, "dirty_count": 3, "docs_path": "data/d.jsonl"}`)
	})

	summary, err := client.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.AdminSummary{Total: 120, ReviewedCount: 7, DirtyCount: 3}, *summary)
}

func TestClient_Record(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/record", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("index"))
		writeJSON(t, w, `{
			"index": 4, "id": "res-5", "reviewed": true, "dirty": false, "total": 9,
			"document": {"id": "res-5", "text": "Unknown"},
			"metadata": {
				"resource_name": "Food Bank",
				"organization_name": "Unknown",
				"categories": ["food", "pantry"],
				"languages": [],
				"city": "Springfield"
			}
		}`)
	})

	rec, err := client.Record(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, rec.Index)
	assert.Equal(t, 9, rec.Total)
	assert.Equal(t, "res-5", rec.ID)
	assert.True(t, rec.Reviewed)
	assert.Equal(t, "5 / 9", rec.Position())
	assert.Equal(t, domain.FieldAbsent, rec.Text.State())

	assert.Equal(t, "Food Bank", rec.Fields.Field(domain.AdminFieldName).Value())
	assert.Equal(t, domain.FieldAbsent, rec.Fields.Field(domain.AdminFieldOrganization).State())
	assert.Equal(t, []string{"food", "pantry"}, rec.Fields.List(domain.AdminFieldCategories).Values())
	assert.Equal(t, domain.FieldAbsent, rec.Fields.List(domain.AdminFieldLanguages).State())
	assert.Equal(t, domain.Unknown, rec.Fields.EditorText(domain.AdminFieldOrganization))
	assert.Equal(t, domain.FieldAbsent, rec.Fields.Field(domain.AdminFieldEmail).State())
}

func TestClient_Record_MalformedMetadata(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, `{"index": 0, "id": "r1", "total": 1, "document": "missing", "metadata": "n/a"}`)
	})

	rec, err := client.Record(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, domain.FieldAbsent, rec.Text.State())
	assert.Equal(t, domain.Unknown, rec.Fields.EditorText(domain.AdminFieldName))
	assert.Equal(t, domain.FieldAbsent, rec.Fields.List(domain.AdminFieldCategories).State())
}

func TestClient_Update_SendsTriStateFields(t *testing.T) {
	var payload map[string]any
	var token string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/update", r.URL.Path)
		token = r.Header.Get("X-Admin-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		writeJSON(t, w, `{"ok": true, "id": "res-5", "dirty_count": 4, "reviewed_count": 8}`)
	})

	fields := domain.NewAdminFields()
	fields.SetEditorText(domain.AdminFieldName, "Food Bank")
	fields.SetEditorText(domain.AdminFieldOrganization, domain.Unknown)
	fields.SetEditorText(domain.AdminFieldPhone, "")
	fields.SetEditorText(domain.AdminFieldLanguages, "English, Spanish")
	fields.SetEditorText(domain.AdminFieldCategories, "")

	res, err := client.Update(context.Background(), "secret", domain.AdminEdit{
		ID:       "res-5",
		Reviewed: true,
		Fields:   fields,
		Text:     domain.NewField("Resource: Food Bank"),
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", token)
	assert.Equal(t, domain.AdminUpdateResult{ID: "res-5", ReviewedCount: 8, DirtyCount: 4}, *res)

	assert.Equal(t, "res-5", payload["id"])
	assert.Equal(t, true, payload["reviewed"])
	assert.Equal(t, "Resource: Food Bank", payload["text"])

	md, ok := payload["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Food Bank", md["resource_name"])
	assert.NotContains(t, md, "organization_name")
	assert.Equal(t, "", md["phone"])
	assert.Equal(t, []any{"English", "Spanish"}, md["languages"])
	assert.Equal(t, []any{}, md["categories"])
	assert.NotContains(t, md, "email")
}

func TestClient_Update_RejectedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, `{"ok": false, "error": "id required"}`)
	})

	_, err := client.Update(context.Background(), "secret", domain.AdminEdit{ID: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "id required")
}

func TestClient_Update_Forbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Update(context.Background(), "wrong", domain.AdminEdit{ID: "x"})

	assert.ErrorIs(t, err, domain.ErrAdminForbidden)
	assert.Equal(t, http.StatusForbidden, domain.StatusCodeOf(err))
}

func TestClient_Save(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/save", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Admin-Token"))
		writeJSON(t, w, `{"ok": true, "docs_path": "data/docs.jsonl", "meta_path": "data/meta.jsonl"}`)
	})

	res, err := client.Save(context.Background(), "secret")

	require.NoError(t, err)
	assert.Equal(t, domain.SaveResult{DocsPath: "data/docs.jsonl", MetaPath: "data/meta.jsonl"}, *res)
}

func TestClient_Upsert(t *testing.T) {
	var onlyDirty []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/upsert", r.URL.Path)
		onlyDirty = append(onlyDirty, r.URL.Query().Get("only_dirty"))
		writeJSON(t, w, `{"ok": true, "upserted": 12, "errors": 1}`)
	})

	res, err := client.Upsert(context.Background(), "secret", true)
	require.NoError(t, err)
	_, err = client.Upsert(context.Background(), "secret", false)
	require.NoError(t, err)

	assert.Equal(t, "Upserted 12 (errors 1).", res.String())
	assert.Equal(t, []string{"true", "false"}, onlyDirty)
}
