package domain

import (
	"fmt"
	"strings"
)

// AdminSummary holds the review progress of the record store.
type AdminSummary struct {
	Total         int
	ReviewedCount int
	DirtyCount    int
}

// AdminFieldKey names one editable metadata field of an admin record.
// The value is the wire name used by the admin endpoints.
type AdminFieldKey string

// Editable admin fields, in editor order.
const (
	AdminFieldName         AdminFieldKey = "resource_name"
	AdminFieldOrganization AdminFieldKey = "organization_name"
	AdminFieldCategories   AdminFieldKey = "categories"
	AdminFieldFees         AdminFieldKey = "fees"
	AdminFieldLanguages    AdminFieldKey = "languages"
	AdminFieldHoursNotes   AdminFieldKey = "hours_notes"
	AdminFieldStreet       AdminFieldKey = "street"
	AdminFieldCity         AdminFieldKey = "city"
	AdminFieldState        AdminFieldKey = "state"
	AdminFieldZipCode      AdminFieldKey = "zip_code"
	AdminFieldCounty       AdminFieldKey = "county"
	AdminFieldPhone        AdminFieldKey = "phone"
	AdminFieldWebsite      AdminFieldKey = "website"
	AdminFieldEmail        AdminFieldKey = "email"
	AdminFieldLastUpdated  AdminFieldKey = "last_updated"
	AdminFieldSourceFile   AdminFieldKey = "source_file"
)

// IsList reports whether the field holds a comma-separated list.
func (k AdminFieldKey) IsList() bool {
	return k == AdminFieldCategories || k == AdminFieldLanguages
}

// Label returns the editor label for the field.
func (k AdminFieldKey) Label() string {
	switch k {
	case AdminFieldName:
		return "Name"
	case AdminFieldOrganization:
		return "Organization"
	case AdminFieldHoursNotes:
		return "Hours"
	case AdminFieldZipCode:
		return "ZIP"
	case AdminFieldLastUpdated:
		return "Last updated"
	case AdminFieldSourceFile:
		return "Source file"
	default:
		return SlugToTitle(strings.ReplaceAll(string(k), "_", "-"))
	}
}

// AllAdminFields returns the editable fields in editor order.
func AllAdminFields() []AdminFieldKey {
	return []AdminFieldKey{
		AdminFieldName,
		AdminFieldOrganization,
		AdminFieldCategories,
		AdminFieldFees,
		AdminFieldLanguages,
		AdminFieldHoursNotes,
		AdminFieldStreet,
		AdminFieldCity,
		AdminFieldState,
		AdminFieldZipCode,
		AdminFieldCounty,
		AdminFieldPhone,
		AdminFieldWebsite,
		AdminFieldEmail,
		AdminFieldLastUpdated,
		AdminFieldSourceFile,
	}
}

// ParseAdminFieldKey resolves a wire name to a field key.
func ParseAdminFieldKey(name string) (AdminFieldKey, error) {
	name = strings.TrimSpace(name)
	for _, k := range AllAdminFields() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown admin field %q", ErrInvalidInput, name)
}

// AdminFields holds the editable metadata of an admin record.
// Scalar fields live in Values, list fields in Lists.
type AdminFields struct {
	Values map[AdminFieldKey]Field
	Lists  map[AdminFieldKey]ListField
}

// NewAdminFields returns an AdminFields with every field absent.
func NewAdminFields() AdminFields {
	return AdminFields{
		Values: make(map[AdminFieldKey]Field),
		Lists:  make(map[AdminFieldKey]ListField),
	}
}

// Field returns the scalar field for k. List keys return an absent field.
func (f AdminFields) Field(k AdminFieldKey) Field {
	return f.Values[k]
}

// List returns the list field for k. Scalar keys return an absent list.
func (f AdminFields) List(k AdminFieldKey) ListField {
	return f.Lists[k]
}

// EditorText returns the editor input text for k.
func (f AdminFields) EditorText(k AdminFieldKey) string {
	if k.IsList() {
		return f.List(k).EditorText()
	}
	return f.Field(k).EditorText()
}

// SetEditorText parses editor input text into the field for k.
func (f *AdminFields) SetEditorText(k AdminFieldKey, text string) {
	if f.Values == nil || f.Lists == nil {
		*f = f.clone()
	}
	if k.IsList() {
		f.Lists[k] = ParseEditorList(text)
		return
	}
	f.Values[k] = ParseEditorField(text)
}

func (f AdminFields) clone() AdminFields {
	out := NewAdminFields()
	for k, v := range f.Values {
		out.Values[k] = v
	}
	for k, v := range f.Lists {
		out.Lists[k] = v
	}
	return out
}

// AdminRecord is one record loaded into the admin editor.
type AdminRecord struct {
	// Index is the 0-based position in the record store.
	Index int

	// Total is the number of records in the store.
	Total int

	ID       string
	Reviewed bool
	Dirty    bool

	Fields AdminFields

	// Text is the embedded document text.
	Text Field
}

// Position formats the 1-based position line, e.g. "3 / 120".
func (r AdminRecord) Position() string {
	return fmt.Sprintf("%d / %d", r.Index+1, r.Total)
}

// AdminEdit is the editor state submitted on save.
type AdminEdit struct {
	ID       string
	Reviewed bool
	Fields   AdminFields
	Text     Field
}

// EditFromRecord starts an edit from a loaded record.
func EditFromRecord(r AdminRecord) AdminEdit {
	return AdminEdit{
		ID:       r.ID,
		Reviewed: r.Reviewed,
		Fields:   r.Fields.clone(),
		Text:     r.Text,
	}
}

// AdminUpdateResult echoes the store counters after an update.
type AdminUpdateResult struct {
	ID            string
	ReviewedCount int
	DirtyCount    int
}

// SaveResult reports where a bulk save wrote its files.
type SaveResult struct {
	DocsPath string
	MetaPath string
}

// UpsertResult reports the outcome of a reindex run.
type UpsertResult struct {
	Upserted int
	Errors   int
}

// String formats the result the way the editor status line shows it.
func (r UpsertResult) String() string {
	return fmt.Sprintf("Upserted %d (errors %d).", r.Upserted, r.Errors)
}
