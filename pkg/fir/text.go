package fir

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Boilerplate lines OCR picks up from the FIR form footer.
var blacklistPhrases = []string{
	"Statement read over and admitted to be true",
	"Signature of Complainant",
	"Signature",
}

var (
	reSpaces      = regexp.MustCompile(`[ \t]+`)
	rePunctSpace  = regexp.MustCompile(`\s+([.,;:])`)
	reLocLabel    = regexp.MustCompile(`(?i)place of occurrence[:\-]?`)
	reLocCutoff   = regexp.MustCompile(`(?i)date|time`)
	reLandmark    = regexp.MustCompile(`(?i)\b(near|opposite|behind|beside|outside|in front of)\b.*`)
	reJunction    = regexp.MustCompile(`(?i)\b(signal|junction|chowk|naka)\b`)
	reWhitespaces = regexp.MustCompile(`\s+`)
)

// NormalizeText cleans OCR output into a single paragraph: collapses
// runs of spaces, joins the word-per-line breaks OCR produces, fixes
// punctuation spacing, and drops form boilerplate.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = reSpaces.ReplaceAllString(text, " ")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		skip := false
		for _, phrase := range blacklistPhrases {
			if strings.EqualFold(line, phrase) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		lines = append(lines, line)
	}

	paragraph := strings.Join(lines, " ")
	paragraph = rePunctSpace.ReplaceAllString(paragraph, "$1")

	return strings.TrimSpace(paragraph)
}

// CleanLocation strips form labels and date/time contamination from an
// extracted location string.
func CleanLocation(loc string) string {
	if loc == "" {
		return ""
	}

	loc = reLocLabel.ReplaceAllString(loc, "")
	if idx := reLocCutoff.FindStringIndex(loc); idx != nil {
		loc = loc[:idx[0]]
	}
	loc = reWhitespaces.ReplaceAllString(loc, " ")

	return strings.TrimSpace(loc)
}

// GeoQuery reduces a location to the part worth geocoding: landmark
// phrases and junction words confuse the geocoder more than they help.
func GeoQuery(location string) string {
	if location == "" {
		return ""
	}

	loc := strings.ToLower(location)
	loc = reLandmark.ReplaceAllString(loc, "")
	loc = reJunction.ReplaceAllString(loc, "")
	loc = reWhitespaces.ReplaceAllString(loc, " ")

	return cases.Title(language.English).String(strings.TrimSpace(loc))
}
