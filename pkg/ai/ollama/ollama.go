// Package ollama implements the ai.MessageClient interface using a
// locally-hosted Ollama server.
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/nyayarakshak/backend/pkg/ai"

	"github.com/ollama/ollama/api"
)

// MessageOllamaClient generates messages via the Ollama chat API.
type MessageOllamaClient struct {
	model string

	Client *api.Client
}

// NewMessageOllamaClientParams contains configuration options for
// creating a new MessageOllamaClient.
type NewMessageOllamaClientParams struct {
	Model   string
	BaseURL string
}

// NewMessageOllamaClient connects to the Ollama server at the given
// BaseURL, or the environment default when empty.
func NewMessageOllamaClient(params NewMessageOllamaClientParams) (*MessageOllamaClient, error) {
	var client *api.Client
	if params.BaseURL != "" {
		u, err := url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
		client = api.NewClient(u, http.DefaultClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	return &MessageOllamaClient{
		model:  params.Model,
		Client: client,
	}, nil
}

// GenerateMessage sends a single chat turn and returns the trimmed
// assistant content.
func (c *MessageOllamaClient) GenerateMessage(
	ctx context.Context,
	system string,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:       c.model,
		Temperature: 0.4,
	}
	for _, o := range opts {
		o(&options)
	}

	messages := []api.Message{}
	if system != "" {
		messages = append(messages, api.Message{Role: "system", Content: system})
	}
	messages = append(messages, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: messages,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}

	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		return nil
	}); err != nil {
		return "", err
	}

	return strings.TrimSpace(final.Message.Content), nil
}
