package alerts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nyayarakshak/backend/pkg/ai"
)

type stubMessageClient struct {
	message string
	err     error
	system  string
	prompt  string
}

func (s *stubMessageClient) GenerateMessage(ctx context.Context, system, prompt string, opts ...ai.GenerateOption) (string, error) {
	s.system = system
	s.prompt = prompt
	return s.message, s.err
}

func TestComposeAlert(t *testing.T) {
	client := &stubMessageClient{message: "  Police advise caution near Kharghar station this evening. Avoid isolated lanes.  "}

	got, err := ComposeAlert(context.Background(), client, Alert{
		Zone:      "Kharghar",
		CrimeType: "Theft",
		Risk:      0.82,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Police advise caution near Kharghar station this evening. Avoid isolated lanes." {
		t.Fatalf("unexpected message %q", got)
	}

	if !strings.Contains(client.prompt, "Area: Kharghar") {
		t.Errorf("prompt missing area: %q", client.prompt)
	}
	if !strings.Contains(client.prompt, "Risk Level: 0.82") {
		t.Errorf("prompt missing risk: %q", client.prompt)
	}
	if !strings.Contains(client.prompt, "Event Context: None") {
		t.Errorf("empty event must default to None: %q", client.prompt)
	}
	if !strings.Contains(client.system, "Do NOT create panic") {
		t.Errorf("unexpected system prompt %q", client.system)
	}
}

func TestComposeAlertEventContext(t *testing.T) {
	client := &stubMessageClient{message: "Stay alert."}

	if _, err := ComposeAlert(context.Background(), client, Alert{Zone: "Dadar", CrimeType: "Theft", Event: "ganpati"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(client.prompt, "Event Context: ganpati") {
		t.Errorf("prompt missing event: %q", client.prompt)
	}
}

func TestComposeAlertEmptyCompletion(t *testing.T) {
	client := &stubMessageClient{message: "   "}

	if _, err := ComposeAlert(context.Background(), client, Alert{Zone: "Dadar", CrimeType: "Theft"}); err == nil {
		t.Fatal("expected error for empty completion")
	}
}

func TestComposeAlertBackendError(t *testing.T) {
	backendErr := errors.New("backend down")
	client := &stubMessageClient{err: backendErr}

	_, err := ComposeAlert(context.Background(), client, Alert{Zone: "Dadar", CrimeType: "Theft"})
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestComposeAlertTruncates(t *testing.T) {
	client := &stubMessageClient{message: strings.Repeat("a", 300)}

	got, err := ComposeAlert(context.Background(), client, Alert{Zone: "Dadar", CrimeType: "Theft"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != MaxMessageLength {
		t.Fatalf("got %d chars, want %d", len(got), MaxMessageLength)
	}
}

func TestShouldSend(t *testing.T) {
	tests := []struct {
		name     string
		areaRisk float64
		timeRisk float64
		want     bool
	}{
		{name: "both high", areaRisk: 0.9, timeRisk: 0.9, want: true},
		{name: "area carries it", areaRisk: 0.95, timeRisk: 0.5, want: true},
		{name: "exactly at threshold", areaRisk: 0.7, timeRisk: 0.7, want: false},
		{name: "both low", areaRisk: 0.2, timeRisk: 0.3, want: false},
		{name: "time alone not enough", areaRisk: 0.0, timeRisk: 1.0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSend(tt.areaRisk, tt.timeRisk); got != tt.want {
				t.Fatalf("ShouldSend(%v, %v) = %v, want %v", tt.areaRisk, tt.timeRisk, got, tt.want)
			}
		})
	}
}
