// Package loader extracts plain text from uploaded FIR documents.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nyayarakshak/backend/pkg/loader/pdf"
)

// ExtractText pulls the raw text out of an uploaded document. Plain
// text files pass through unchanged; PDFs go through the external
// extractor. Anything else is rejected.
func ExtractText(ctx context.Context, filename string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return string(content), nil
	case ".pdf":
		text, err := pdf.Parse(ctx, content)
		if err != nil {
			return "", fmt.Errorf("extract pdf text from %s: %w", filename, err)
		}
		return text, nil
	}
	return "", fmt.Errorf("unsupported document type: %s", filename)
}
