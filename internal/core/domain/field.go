package domain

import "strings"

// Sentinels shown in place of missing values. They are display-only and
// never round-trip back into a Field.
const (
	// NotProvided is shown on result cards for absent or blank values.
	NotProvided = "Not provided"

	// Unknown is shown in admin editor inputs for absent or blank values.
	Unknown = "Unknown"
)

// FieldState distinguishes a value that was never supplied from one that
// was explicitly supplied empty.
type FieldState int

const (
	// FieldAbsent means the value was not supplied at all.
	FieldAbsent FieldState = iota
	// FieldEmpty means the value was supplied but blank.
	FieldEmpty
	// FieldPresent means the value carries non-blank text.
	FieldPresent
)

// String returns the string representation of the state.
func (s FieldState) String() string {
	switch s {
	case FieldAbsent:
		return "absent"
	case FieldEmpty:
		return "empty"
	case FieldPresent:
		return "present"
	default:
		return "unknown"
	}
}

// Field is an optional string value with an explicit tri-state.
// The zero value is an absent field.
type Field struct {
	state FieldState
	value string
}

// AbsentField returns a field that was never supplied.
func AbsentField() Field {
	return Field{state: FieldAbsent}
}

// EmptyField returns a field that was supplied blank.
func EmptyField() Field {
	return Field{state: FieldEmpty}
}

// NewField returns a present field for non-blank text and an empty field
// otherwise. Surrounding whitespace is trimmed.
func NewField(value string) Field {
	v := strings.TrimSpace(value)
	if v == "" {
		return EmptyField()
	}
	return Field{state: FieldPresent, value: v}
}

// State returns the field state.
func (f Field) State() FieldState {
	return f.state
}

// IsPresent reports whether the field carries a value.
func (f Field) IsPresent() bool {
	return f.state == FieldPresent
}

// Value returns the raw value, empty unless present.
func (f Field) Value() string {
	return f.value
}

// Display returns the value, or NotProvided when absent or empty.
func (f Field) Display() string {
	return f.DisplayOr(NotProvided)
}

// DisplayOr returns the value, or fallback when absent or empty.
func (f Field) DisplayOr(fallback string) string {
	if f.state == FieldPresent {
		return f.value
	}
	return fallback
}

// EditorText returns the text an admin editor input starts with.
func (f Field) EditorText() string {
	return f.DisplayOr(Unknown)
}

// Or returns f when present, otherwise other.
func (f Field) Or(other Field) Field {
	if f.state == FieldPresent {
		return f
	}
	if other.state == FieldPresent {
		return other
	}
	// Keep the more specific "explicitly empty" over "absent".
	if f.state == FieldEmpty || other.state == FieldEmpty {
		return EmptyField()
	}
	return AbsentField()
}

// ParseEditorField converts admin editor text back into a field.
// Text equal to the Unknown sentinel means the user left it untouched
// (absent); blank text means the user cleared it (empty).
func ParseEditorField(text string) Field {
	v := strings.TrimSpace(text)
	if v == Unknown {
		return AbsentField()
	}
	return NewField(v)
}

// ListField is an optional list of strings with an explicit tri-state.
// The zero value is an absent list.
type ListField struct {
	state  FieldState
	values []string
}

// AbsentList returns a list that was never supplied.
func AbsentList() ListField {
	return ListField{state: FieldAbsent}
}

// NewListField returns a present list when at least one non-blank item
// remains after trimming, and an empty list otherwise.
func NewListField(values []string) ListField {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return ListField{state: FieldEmpty}
	}
	return ListField{state: FieldPresent, values: cleaned}
}

// SplitListField parses a comma-separated string into a list field.
func SplitListField(text string) ListField {
	return NewListField(strings.Split(text, ","))
}

// ParseEditorList converts admin editor text back into a list field,
// following the same rules as ParseEditorField.
func ParseEditorList(text string) ListField {
	v := strings.TrimSpace(text)
	if v == Unknown {
		return AbsentList()
	}
	return SplitListField(v)
}

// State returns the list state.
func (l ListField) State() FieldState {
	return l.state
}

// IsPresent reports whether the list has at least one item.
func (l ListField) IsPresent() bool {
	return l.state == FieldPresent
}

// Values returns a copy of the items.
func (l ListField) Values() []string {
	if len(l.values) == 0 {
		return nil
	}
	out := make([]string, len(l.values))
	copy(out, l.values)
	return out
}

// Display joins the items with ", ", or returns NotProvided.
func (l ListField) Display() string {
	return l.DisplayOr(NotProvided)
}

// DisplayOr joins the items with ", ", or returns fallback.
func (l ListField) DisplayOr(fallback string) string {
	if l.state == FieldPresent {
		return strings.Join(l.values, ", ")
	}
	return fallback
}

// EditorText returns the text an admin editor input starts with.
func (l ListField) EditorText() string {
	return l.DisplayOr(Unknown)
}
