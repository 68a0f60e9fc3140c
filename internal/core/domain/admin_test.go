package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdminFieldKey_IsList tests list field detection
func TestAdminFieldKey_IsList(t *testing.T) {
	assert.True(t, AdminFieldCategories.IsList())
	assert.True(t, AdminFieldLanguages.IsList())
	assert.False(t, AdminFieldName.IsList())
	assert.False(t, AdminFieldFees.IsList())
}

// TestAdminFieldKey_Label tests editor labels
func TestAdminFieldKey_Label(t *testing.T) {
	assert.Equal(t, "Name", AdminFieldName.Label())
	assert.Equal(t, "ZIP", AdminFieldZipCode.Label())
	assert.Equal(t, "Street", AdminFieldStreet.Label())
	assert.Equal(t, "Categories", AdminFieldCategories.Label())
}

// TestAllAdminFields tests that every field is listed once
func TestAllAdminFields(t *testing.T) {
	fields := AllAdminFields()
	assert.Len(t, fields, 16)

	seen := make(map[AdminFieldKey]bool)
	for _, f := range fields {
		assert.False(t, seen[f], "duplicate field %s", f)
		seen[f] = true
	}
}

// TestParseAdminFieldKey tests wire name lookup
func TestParseAdminFieldKey(t *testing.T) {
	k, err := ParseAdminFieldKey("zip_code")
	require.NoError(t, err)
	assert.Equal(t, AdminFieldZipCode, k)

	_, err = ParseAdminFieldKey("nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestAdminFields_EditorRoundTrip tests editor text parsing per field kind
func TestAdminFields_EditorRoundTrip(t *testing.T) {
	var f AdminFields
	assert.Equal(t, Unknown, f.EditorText(AdminFieldCity))
	assert.Equal(t, Unknown, f.EditorText(AdminFieldLanguages))

	f.SetEditorText(AdminFieldCity, "Springfield")
	f.SetEditorText(AdminFieldLanguages, "English, Spanish")
	f.SetEditorText(AdminFieldFees, "")
	f.SetEditorText(AdminFieldPhone, "Unknown")

	assert.Equal(t, "Springfield", f.EditorText(AdminFieldCity))
	assert.Equal(t, []string{"English", "Spanish"}, f.List(AdminFieldLanguages).Values())
	assert.Equal(t, FieldEmpty, f.Field(AdminFieldFees).State())
	assert.Equal(t, FieldAbsent, f.Field(AdminFieldPhone).State())
}

// TestEditFromRecord tests that edits do not alias the record fields
func TestEditFromRecord(t *testing.T) {
	rec := AdminRecord{ID: "r1", Reviewed: true, Fields: NewAdminFields(), Text: NewField("body")}
	rec.Fields.SetEditorText(AdminFieldName, "Pantry")

	edit := EditFromRecord(rec)
	edit.Fields.SetEditorText(AdminFieldName, "Changed")

	assert.Equal(t, "Pantry", rec.Fields.Field(AdminFieldName).Value())
	assert.Equal(t, "Changed", edit.Fields.Field(AdminFieldName).Value())
	assert.Equal(t, "r1", edit.ID)
	assert.True(t, edit.Reviewed)
}

// TestAdminRecord_Position tests the 1-based position line
func TestAdminRecord_Position(t *testing.T) {
	assert.Equal(t, "3 / 120", AdminRecord{Index: 2, Total: 120}.Position())
}

// TestUpsertResult_String tests the status line
func TestUpsertResult_String(t *testing.T) {
	assert.Equal(t, "Upserted 4 (errors 1).", UpsertResult{Upserted: 4, Errors: 1}.String())
}
