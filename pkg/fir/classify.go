package fir

import "strings"

// CrimeTypeUnknown is used when no rule matches.
const CrimeTypeUnknown = "Unknown"

var sectionCrimeTypes = []struct {
	section   string
	crimeType string
}{
	{"302", "Murder"},
	{"307", "Attempt to Murder"},
	{"379", "Theft"},
	{"354", "Sexual Harassment"},
	{"420", "Cheating / Fraud"},
	{"279", "Road Accident"},
}

var keywordCrimeTypes = []struct {
	keywords  []string
	crimeType string
}{
	{[]string{"killed", "murder"}, "Murder"},
	{[]string{"iron rod", "attack"}, "Attempt to Murder"},
	{[]string{"stolen", "wallet"}, "Theft"},
	{[]string{"traffic jam", "congestion"}, "Traffic Obstruction"},
}

// ResolveCrimeType resolves the crime type with precedence: explicitly
// extracted value, then IPC section lookup, then complaint keywords.
func ResolveCrimeType(extracted, sections, complaintText string) string {
	if strings.TrimSpace(extracted) != "" {
		return strings.TrimSpace(extracted)
	}

	if sections != "" {
		for _, sc := range sectionCrimeTypes {
			if strings.Contains(sections, sc.section) {
				return sc.crimeType
			}
		}
	}

	if complaintText == "" {
		return CrimeTypeUnknown
	}

	text := strings.ToLower(complaintText)
	for _, kc := range keywordCrimeTypes {
		for _, kw := range kc.keywords {
			if strings.Contains(text, kw) {
				return kc.crimeType
			}
		}
	}

	return CrimeTypeUnknown
}

// ClassifyDepartments maps a crime type to the departments that should
// see the FIR. Everything defaults to law and order.
func ClassifyDepartments(crimeType string) []string {
	switch crimeType {
	case "Murder", "Attempt to Murder", "Cheating / Fraud", "Cyber Crime":
		return []string{"law_order", "crime_branch"}
	case "Traffic Obstruction", "Road Accident":
		return []string{"traffic"}
	}
	return []string{"law_order"}
}

var highPriorityCrimes = map[string]bool{
	"murder":            true,
	"attempt to murder": true,
	"rape":              true,
	"sexual harassment": true,
	"road accident":     true,
}

var mediumPriorityCrimes = map[string]bool{
	"theft":                      true,
	"assault":                    true,
	"cyber crime - online fraud": true,
	"cheating and fraud":         true,
	"cheating / fraud":           true,
}

// ResolvePriority maps a crime type to the dashboard priority bucket.
func ResolvePriority(crimeType string) string {
	ct := strings.ToLower(strings.TrimSpace(crimeType))
	switch {
	case highPriorityCrimes[ct]:
		return "High"
	case mediumPriorityCrimes[ct]:
		return "Medium"
	}
	return "Low"
}
