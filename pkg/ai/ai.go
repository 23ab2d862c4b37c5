// Package ai defines the interface for the language-model backends used
// to draft citizen-facing alert messages.
package ai

import "context"

// GenerateOptions holds configuration for generation requests.
type GenerateOptions struct {
	Model       string  // Model identifier to use for generation
	Temperature float64 // Sampling temperature (0.0-2.0)
	MaxTokens   int     // Upper bound on generated tokens, 0 for backend default
}

// GenerateOption is a functional option for configuring generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature. Lower values make
// outputs more focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens caps the length of the generated message.
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = n
	}
}

// MessageClient generates a short message from a system instruction and
// a user prompt. Implementations exist for OpenAI-compatible APIs and
// for locally-hosted Ollama models.
type MessageClient interface {
	GenerateMessage(
		ctx context.Context,
		system string,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
}
