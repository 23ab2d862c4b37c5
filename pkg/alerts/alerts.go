// Package alerts composes citizen safety alert messages and delivers
// them over SMS.
package alerts

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyayarakshak/backend/pkg/ai"
)

// Alert is the context an alert message is generated from.
type Alert struct {
	Phone     string  `json:"phone"`
	Zone      string  `json:"zone"`
	CrimeType string  `json:"crime_type"`
	Risk      float64 `json:"risk"`
	Event     string  `json:"event,omitempty"`
}

const composeSystemPrompt = "You generate short public safety SMS alerts. " +
	"Tone must be calm, neutral, and advisory. " +
	"Do NOT create panic. " +
	"Maximum 30 words."

// ComposeAlert asks the message backend for a short advisory text for
// the alert context. The result is truncated to the SMS length limit.
func ComposeAlert(ctx context.Context, client ai.MessageClient, alert Alert) (string, error) {
	event := alert.Event
	if event == "" {
		event = "None"
	}

	prompt := fmt.Sprintf(
		"Area: %s\nIncident Type: %s\nRisk Level: %.2f\nEvent Context: %s",
		alert.Zone, alert.CrimeType, alert.Risk, event,
	)

	message, err := client.GenerateMessage(ctx, composeSystemPrompt, prompt,
		ai.WithTemperature(0.4),
		ai.WithMaxTokens(60),
	)
	if err != nil {
		return "", fmt.Errorf("compose alert message: %w", err)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("compose alert message: empty completion")
	}
	return Truncate(message), nil
}

// ShouldSend reports whether the combined area and time risk justifies
// an outbound alert.
func ShouldSend(areaRisk, timeRisk float64) bool {
	return areaRisk*0.6+timeRisk*0.4 > 0.7
}
