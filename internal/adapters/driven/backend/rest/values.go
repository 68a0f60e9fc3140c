package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// object is a JSON object whose values are decoded lazily.
type object map[string]json.RawMessage

// isNull reports whether raw is missing or JSON null.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// asObject decodes raw as an object. Null, scalars and arrays yield nil.
func asObject(raw json.RawMessage) object {
	if isNull(raw) {
		return nil
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil
	}
	return o
}

// sub decodes key as a nested object. Anything else yields nil.
func (o object) sub(key string) object {
	return asObject(o[key])
}

// field converts a JSON value to a Field. Missing and null values are
// absent; blank strings are empty; numbers and bools keep their JSON text;
// arrays are joined with ", ".
func field(raw json.RawMessage) domain.Field {
	if isNull(raw) {
		return domain.AbsentField()
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return domain.NewField(s)
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		return domain.NewField(strings.Join(scalars(items), ", "))
	}
	return domain.NewField(string(bytes.TrimSpace(raw)))
}

// list converts a JSON value to a ListField. Strings are split on commas.
func list(raw json.RawMessage) domain.ListField {
	if isNull(raw) {
		return domain.AbsentList()
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		return domain.NewListField(scalars(items))
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return domain.SplitListField(s)
	}
	return domain.NewListField([]string{string(bytes.TrimSpace(raw))})
}

// scalars renders array items as text, dropping nulls.
func scalars(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			continue
		}
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
			continue
		}
		out = append(out, string(bytes.TrimSpace(item)))
	}
	return out
}

// number decodes a JSON number, accepting numeric strings.
func number(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return &f
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &parsed
		}
	}
	return nil
}

// coalesce returns the first present field, or absent.
func coalesce(fields ...domain.Field) domain.Field {
	for _, f := range fields {
		if f.IsPresent() {
			return f
		}
	}
	return domain.AbsentField()
}

// coalesceList returns the first present list, or absent.
func coalesceList(lists ...domain.ListField) domain.ListField {
	for _, l := range lists {
		if l.IsPresent() {
			return l
		}
	}
	return domain.AbsentList()
}

// flattenMetadata reads resource metadata, preferring flat keys over the
// nested contact, location, hours and service_details objects.
func flattenMetadata(md object) domain.ResourceMetadata {
	contact := md.sub("contact")
	loc := md.sub("location")
	hours := md.sub("hours")
	details := md.sub("service_details")

	return domain.ResourceMetadata{
		ResourceID: field(md["resource_id"]),
		ID:         field(md["id"]),

		Name:         field(md["resource_name"]),
		Organization: field(md["organization_name"]),

		FullAddress: coalesce(field(md["full_address"]), field(loc["full_address"])),
		Street:      coalesce(field(md["street"]), field(loc["street"])),
		City:        coalesce(field(md["city"]), field(loc["city"])),
		State:       coalesce(field(md["state"]), field(loc["state"])),
		ZipCode:     coalesce(field(md["zip_code"]), field(loc["zip_code"])),
		County:      coalesce(field(md["county"]), field(loc["county"])),

		Phone:   coalesce(field(md["phone"]), field(contact["phone"])),
		Website: coalesce(field(md["website"]), field(contact["website"])),
		Email:   coalesce(field(md["email"]), field(contact["email"])),

		Hours: coalesce(field(md["hours_notes"]), field(hours["notes"])),
		Fees:  coalesce(field(md["fees"]), field(details["fees"])),

		Categories: list(md["categories"]),
		Languages:  coalesceList(list(md["languages"]), list(details["languages"])),

		LastUpdated: field(md["last_updated"]),
		SourceFile:  field(md["source_file"]),

		Text: field(md["text"]),
	}
}
