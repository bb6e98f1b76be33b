package models

import (
	"fmt"
	"time"
)

// CaseKind tells whether a report concerns an injured animal or suspected abuse.
type CaseKind string

const (
	CaseKindInjury CaseKind = "injury"
	CaseKindAbuse  CaseKind = "abuse"
)

// CaseStatus advances monotonically and never regresses.
//
// registered -> dispatched (injury) or registered -> notified (abuse).
type CaseStatus string

const (
	CaseStatusRegistered CaseStatus = "registered"
	CaseStatusDispatched CaseStatus = "dispatched"
	CaseStatusNotified   CaseStatus = "notified"
)

const (
	injuryIDBase     = 1000
	abuseIDBase      = 2000
	referenceSeqBase = 5000
)

// FormatCaseID builds the type-prefixed case ID, e.g. INJ1001 for the first
// injury case of a session and ABU2001 for the first abuse case.
func FormatCaseID(kind CaseKind, seq int64) string {
	if kind == CaseKindAbuse {
		return fmt.Sprintf("ABU%d", abuseIDBase+seq)
	}
	return fmt.Sprintf("INJ%d", injuryIDBase+seq)
}

// FormatReferenceNumber builds the synthetic filing number for an abuse case,
// e.g. FIR/2025/ANM/5001 for the first abuse case filed in 2025.
func FormatReferenceNumber(year int, seq int64) string {
	return fmt.Sprintf("FIR/%d/ANM/%d", year, referenceSeqBase+seq)
}

// Facility is a candidate veterinary facility offered to the reporter of an
// injury case. The list is a fixed catalog, not a geospatial lookup.
type Facility struct {
	Name      string
	Contact   string
	FeeRange  string
	Specialty string
}

// InjuryFacilities is the catalog attached to every injury case.
var InjuryFacilities = []Facility{
	{
		Name:      "CityPaws Veterinary Hospital",
		Contact:   "+91 80 4111 2233",
		FeeRange:  "₹500–₹2,000",
		Specialty: "Trauma and orthopedic care",
	},
	{
		Name:      "Sanjeevini Animal Care Centre",
		Contact:   "+91 80 2556 7890",
		FeeRange:  "₹300–₹1,500",
		Specialty: "General surgery and wound care",
	},
	{
		Name:      "Karuna Street Animal Clinic",
		Contact:   "+91 98860 45671",
		FeeRange:  "Free–₹500",
		Specialty: "Stray and community animals",
	},
}

// Responder contact details shown once an injury case is dispatched.
const (
	ResponderName    = "Dr. Kavya Menon"
	ResponderContact = "+91 98450 12345"
)

// Case is a single injury or abuse report. A case belongs to exactly one
// browser session and is append-only apart from the dispatch/notify fields.
type Case struct {
	ID           string    `db:"id"`
	Kind         CaseKind  `db:"kind"`
	AnimalType   string    `db:"animal_type"`
	Location     string    `db:"location"`
	Description  string    `db:"description"`
	AttachmentID string    `db:"attachment_id"`
	CreatedAt    time.Time `db:"created_at"`

	// AnalysisText holds the collaborator's advisory text, or a
	// human-readable error line when the collaborator call failed.
	AnalysisText string     `db:"analysis_text"`
	Status       CaseStatus `db:"status"`

	// Injury-specific fields.
	SelectedFacility *int64 `db:"selected_facility"`
	GuidanceText     string `db:"guidance_text"`
	Facilities       []Facility

	// Abuse-specific fields.
	AbuseCategory     string `db:"abuse_category"`
	ReferenceNumber   string `db:"reference_number"`
	AuthorityNotified bool   `db:"authority_notified"`
}

// Dispatched reports whether an emergency responder has been assigned.
func (c Case) Dispatched() bool {
	return c.Status == CaseStatusDispatched
}

// SelectedFacilityName resolves the selected facility against the catalog.
// Empty when no facility has been selected.
func (c Case) SelectedFacilityName() string {
	if c.SelectedFacility == nil {
		return ""
	}
	i := int(*c.SelectedFacility)
	if i < 0 || i >= len(c.Facilities) {
		return ""
	}
	return c.Facilities[i].Name
}

// Summary renders the case fields for embedding into a chat prompt.
func (c Case) Summary() string {
	summary := fmt.Sprintf("Case %s (%s report): animal %q at %q. Description: %s. Status: %s.",
		c.ID, c.Kind, c.AnimalType, c.Location, c.Description, c.Status)
	if c.Kind == CaseKindAbuse {
		summary += fmt.Sprintf(" Category: %s. Reference number: %s.", c.AbuseCategory, c.ReferenceNumber)
	}
	if c.SelectedFacility != nil && int(*c.SelectedFacility) < len(c.Facilities) {
		summary += fmt.Sprintf(" Selected facility: %s.", c.Facilities[*c.SelectedFacility].Name)
	}
	return summary
}
