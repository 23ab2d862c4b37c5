package fir

import "github.com/nyayarakshak/backend/pkg/casegraph"

// BuildExtraction converts a processed FIR into the entity and
// relationship mentions the case-graph pipeline ingests. The document
// node is always present; the rest depends on which fields the
// extractor found.
func BuildExtraction(f FIR) casegraph.ExtractionResult {
	var result casegraph.ExtractionResult

	docLabel := f.FIRID
	result.Mentions = append(result.Mentions, casegraph.Mention{
		Type:  casegraph.NodeTypeDocument,
		Label: docLabel,
	})

	hasEvent := f.CrimeType != "" && f.CrimeType != CrimeTypeUnknown
	if hasEvent {
		result.Mentions = append(result.Mentions, casegraph.Mention{
			Type:  casegraph.NodeTypeEvent,
			Label: f.CrimeType,
		})
		result.Relations = append(result.Relations, casegraph.Relation{
			FromType: casegraph.NodeTypeDocument, FromLabel: docLabel,
			ToType: casegraph.NodeTypeEvent, ToLabel: f.CrimeType,
			Label: "mentioned_in",
		})
	}

	if f.LocationText != "" {
		result.Mentions = append(result.Mentions, casegraph.Mention{
			Type:  casegraph.NodeTypeLocation,
			Label: f.LocationText,
		})
		result.Relations = append(result.Relations, casegraph.Relation{
			FromType: casegraph.NodeTypeDocument, FromLabel: docLabel,
			ToType: casegraph.NodeTypeLocation, ToLabel: f.LocationText,
			Label: "mentioned_in",
		})
		if hasEvent {
			result.Relations = append(result.Relations, casegraph.Relation{
				FromType: casegraph.NodeTypeEvent, FromLabel: f.CrimeType,
				ToType: casegraph.NodeTypeLocation, ToLabel: f.LocationText,
				Label: "occurred_at",
			})
		}
	}

	if f.Complainant != "" {
		result.Mentions = append(result.Mentions, casegraph.Mention{
			Type:  casegraph.NodeTypePerson,
			Label: f.Complainant,
		})
		result.Relations = append(result.Relations, casegraph.Relation{
			FromType: casegraph.NodeTypePerson, FromLabel: f.Complainant,
			ToType: casegraph.NodeTypeDocument, ToLabel: docLabel,
			Label: "reported",
		})
	}

	if f.Accused != "" {
		result.Mentions = append(result.Mentions, casegraph.Mention{
			Type:  casegraph.NodeTypePerson,
			Label: f.Accused,
		})
		if hasEvent {
			result.Relations = append(result.Relations, casegraph.Relation{
				FromType: casegraph.NodeTypePerson, FromLabel: f.Accused,
				ToType: casegraph.NodeTypeEvent, ToLabel: f.CrimeType,
				Label: "suspect_of",
			})
		}
		if f.LocationText != "" {
			result.Relations = append(result.Relations, casegraph.Relation{
				FromType: casegraph.NodeTypePerson, FromLabel: f.Accused,
				ToType: casegraph.NodeTypeLocation, ToLabel: f.LocationText,
				Label: "present_at",
			})
		}
	}

	return result
}
