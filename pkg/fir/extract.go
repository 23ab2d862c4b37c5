package fir

import (
	"regexp"
	"strings"

	"github.com/nyayarakshak/backend/pkg/geo"
)

// Fields holds the labeled values pulled from FIR text.
type Fields struct {
	CrimeType   string
	Location    string
	Date        string
	Time        string
	Sections    string
	Complainant string
	Accused     string
	Complaint   string
	Geo         string
}

var fieldPatterns = map[string]*regexp.Regexp{
	"crime_type":  regexp.MustCompile(`(?im)^.*?Crime Type:\s*(.+)$`),
	"location":    regexp.MustCompile(`(?im)^.*?Location:\s*(.+)$`),
	"date":        regexp.MustCompile(`(?im)^.*?Date:\s*(.+)$`),
	"time":        regexp.MustCompile(`(?im)^.*?Time:\s*(.+)$`),
	"sections":    regexp.MustCompile(`(?im)^.*?Sections:\s*(.+)$`),
	"complainant": regexp.MustCompile(`(?im)^.*?Complainant(?: Name)?:\s*(.+)$`),
	"accused":     regexp.MustCompile(`(?im)^.*?Accused(?: Name)?:\s*(.+)$`),
	"complaint":   regexp.MustCompile(`(?is)Complaint:\s*(.+?)(?:\n[A-Z][a-z]+ ?[A-Za-z]*:|\z)`),
	"geo":         regexp.MustCompile(`(?im)^.*?Geo:\s*(.+)$`),
}

func findField(pattern *regexp.Regexp, text string) string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// ExtractFields pulls labeled fields from raw FIR text. It operates on
// the un-normalized text since the labels are line-oriented; the
// complaint body falls back to the whole normalized text when no
// Complaint: section is present.
func ExtractFields(text string) Fields {
	fields := Fields{
		CrimeType:   findField(fieldPatterns["crime_type"], text),
		Location:    CleanLocation(findField(fieldPatterns["location"], text)),
		Date:        findField(fieldPatterns["date"], text),
		Time:        findField(fieldPatterns["time"], text),
		Sections:    findField(fieldPatterns["sections"], text),
		Complainant: findField(fieldPatterns["complainant"], text),
		Accused:     findField(fieldPatterns["accused"], text),
		Geo:         findField(fieldPatterns["geo"], text),
	}

	fields.Complaint = NormalizeText(findField(fieldPatterns["complaint"], text))
	if fields.Complaint == "" {
		fields.Complaint = NormalizeText(text)
	}

	return fields
}

// Build assembles a FIR record from extracted fields, resolving the
// crime type and department tags. Pre-annotated Geo: values, including
// the legacy python-dict form older scans carry, take precedence over
// geocoding; unparseable ones are dropped so the location text can
// still be geocoded downstream.
func Build(firID, caseID, sourceFile, rawText string, fields Fields) FIR {
	crimeType := ResolveCrimeType(fields.CrimeType, fields.Sections, fields.Complaint)

	var point *geo.Point
	if fields.Geo != "" {
		if p, err := geo.ParsePoint(fields.Geo); err == nil {
			point = &p
		}
	}

	return FIR{
		FIRID:          firID,
		CaseID:         caseID,
		SourceFile:     sourceFile,
		RawText:        rawText,
		ComplaintText:  fields.Complaint,
		CrimeType:      crimeType,
		Sections:       fields.Sections,
		Date:           fields.Date,
		Time:           fields.Time,
		LocationText:   fields.Location,
		Geo:            point,
		Complainant:    fields.Complainant,
		Accused:        fields.Accused,
		DepartmentTags: ClassifyDepartments(crimeType),
		Status:         StatusPending,
	}
}
