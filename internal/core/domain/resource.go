package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ResourceRecord is a single hit returned by the resource-matching service.
type ResourceRecord struct {
	// ExplicitID is the top-level "id" of the hit.
	ExplicitID Field

	// ServiceID is the top-level "service_id" of the hit.
	ServiceID Field

	// Score is the relevance score assigned by the service, if any.
	Score *float64

	// Summary is the per-card model summary ("model_summary").
	Summary Field

	// Metadata holds the structured resource fields.
	Metadata ResourceMetadata
}

// ResourceMetadata holds the structured fields of a resource, flattened
// from the nested contact/location/hours/service_details shapes.
type ResourceMetadata struct {
	// ResourceID is metadata.resource_id.
	ResourceID Field
	// ID is metadata.id.
	ID Field

	Name         Field
	Organization Field

	FullAddress Field
	Street      Field
	City        Field
	State       Field
	ZipCode     Field
	County      Field

	Phone   Field
	Website Field
	Email   Field

	Hours Field
	Fees  Field

	Categories ListField
	Languages  ListField

	LastUpdated Field
	SourceFile  Field

	// Text is the full text used for embedding.
	Text Field
}

// ID resolves the resource identifier. Candidates are checked in fixed
// priority order (explicit id, service id, metadata resource id,
// metadata id); the first one that was supplied wins, even if blank.
// An identifier that was never supplied resolves to "".
func (r ResourceRecord) ID() string {
	candidates := []Field{
		r.ExplicitID,
		r.ServiceID,
		r.Metadata.ResourceID,
		r.Metadata.ID,
	}
	for _, c := range candidates {
		if c.State() != FieldAbsent {
			return c.Value()
		}
	}
	return ""
}

// DisplayName returns the card title.
func (r ResourceRecord) DisplayName() string {
	return r.Metadata.Name.Display()
}

// CitationLabel returns the label used when a citation references this
// record: the resource name, or "Resource <id>" when the name is missing.
func (r ResourceRecord) CitationLabel() string {
	if r.Metadata.Name.IsPresent() {
		return r.Metadata.Name.Value()
	}
	return FallbackCitationLabel(r.ID())
}

// ScoreText formats the score with three decimals, or "—" when missing.
func (r ResourceRecord) ScoreText() string {
	if r.Score == nil {
		return "—"
	}
	return fmt.Sprintf("%.3f", *r.Score)
}

// FallbackCitationLabel is the label for a citation whose identifier is
// not present in the resource index.
func FallbackCitationLabel(id string) string {
	return "Resource " + id
}

// Address returns the full address when supplied, otherwise the present
// street/city/state/zip parts joined with ", ", otherwise NotProvided.
func (m ResourceMetadata) Address() string {
	if m.FullAddress.IsPresent() {
		return m.FullAddress.Value()
	}
	parts := make([]string, 0, 4)
	for _, f := range []Field{m.Street, m.City, m.State, m.ZipCode} {
		if f.IsPresent() {
			parts = append(parts, f.Value())
		}
	}
	if len(parts) == 0 {
		return NotProvided
	}
	return strings.Join(parts, ", ")
}

// PhoneURI returns a tel: URI for the phone number, or "" when there are
// no dialable characters.
func (m ResourceMetadata) PhoneURI() string {
	if !m.Phone.IsPresent() {
		return ""
	}
	var b strings.Builder
	for _, r := range m.Phone.Value() {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "tel:" + b.String()
}

// MapsURL returns a map search URL for the address, or "" when no address
// is known.
func (m ResourceMetadata) MapsURL() string {
	addr := m.Address()
	if addr == NotProvided {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(addr)
}

// Locality formats the city, county and ZIP line shown under a card.
func (m ResourceMetadata) Locality() string {
	return fmt.Sprintf("City %s • County %s • ZIP %s",
		m.City.DisplayOr("—"), m.County.DisplayOr("—"), m.ZipCode.DisplayOr("—"))
}
