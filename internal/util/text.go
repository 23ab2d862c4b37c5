package util

import "strings"

// SanitizePostgresText strips NUL bytes and invalid UTF-8 from scanned
// document text before it is stored. OCR output and pdftotext both leak
// stray bytes that Postgres TEXT columns reject.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}
