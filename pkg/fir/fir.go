// Package fir turns raw First Information Report text into structured
// records and case-graph extraction results. Field extraction is
// rule-based: labeled-line regexes first, IPC section lookup second,
// complaint keywords last.
package fir

import "github.com/nyayarakshak/backend/pkg/geo"

// FIR statuses.
const (
	StatusPending       = "pending"
	StatusInvestigating = "investigating"
	StatusClosed        = "closed"
)

// FIR is one processed First Information Report.
type FIR struct {
	FIRID      string `json:"fir_id"`
	CaseID     string `json:"case_id"`
	SourceFile string `json:"source_file"`

	RawText       string `json:"raw_text"`
	ComplaintText string `json:"complaint_text"`

	CrimeType string `json:"crime_type,omitempty"`
	Sections  string `json:"sections,omitempty"`

	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	LocationText string     `json:"location,omitempty"`
	Geo          *geo.Point `json:"geo,omitempty"`

	Complainant string `json:"complainant,omitempty"`
	Accused     string `json:"accused,omitempty"`

	DepartmentTags []string `json:"department_tags"`
	Status         string   `json:"status"`
}
