package util

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewFIRID generates a short unique identifier for an ingested FIR.
func NewFIRID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return "", fmt.Errorf("generate fir id: %w", err)
	}
	return "fir_" + id, nil
}

// NewAlertID generates a short unique identifier for a sent alert.
func NewAlertID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return "", fmt.Errorf("generate alert id: %w", err)
	}
	return "alert_" + id, nil
}
