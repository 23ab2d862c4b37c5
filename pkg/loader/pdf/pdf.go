// Package pdf extracts text from PDF documents via the poppler
// pdftotext binary.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const extractTimeout = 30 * time.Second

var reNewlines = regexp.MustCompile(`\n{3,}`)

// Parse writes the PDF bytes to a temp file and runs pdftotext over
// it. Repeated blank lines are collapsed so downstream field
// extraction sees a stable layout.
func Parse(ctx context.Context, input []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "pdfextract-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, input, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp PDF: %w", err)
	}

	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not found in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	cmd := exec.CommandContext(
		ctx,
		"pdftotext",
		"-enc", "UTF-8",
		"-eol", "unix",
		"-nopgbrk",
		"-q",
		pdfPath,
		"-",
	)
	cmd.Env = append(os.Environ(), "LANG=C.UTF-8", "LC_ALL=C.UTF-8")

	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("pdftotext timed out")
	}
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, bytes.TrimSpace(out))
	}

	text := strings.TrimSpace(string(out))
	text = reNewlines.ReplaceAllString(text, "\n\n")
	return text, nil
}
