// Package openai implements the ai.MessageClient interface against any
// OpenAI-compatible chat completion API, including hosted providers
// that expose the same wire format behind a custom base URL.
package openai

import (
	"context"
	"strings"

	"github.com/nyayarakshak/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// MessageOpenAIClient talks to an OpenAI-compatible chat endpoint.
// A MessageOpenAIClient should be created using NewMessageOpenAIClient.
type MessageOpenAIClient struct {
	model string

	ChatClient *openai.Client
}

// NewMessageOpenAIClientParams defines the configuration for creating a
// new MessageOpenAIClient. BaseURL may point at any provider speaking
// the OpenAI chat completion protocol; leave it empty for the default.
type NewMessageOpenAIClientParams struct {
	Model   string
	BaseURL string
	ApiKey  string
}

// NewMessageOpenAIClient creates a chat client for the configured
// endpoint and model.
func NewMessageOpenAIClient(params NewMessageOpenAIClientParams) *MessageOpenAIClient {
	opts := []option.RequestOption{}
	if params.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(params.BaseURL))
	}
	if params.ApiKey != "" {
		opts = append(opts, option.WithAPIKey(params.ApiKey))
	}
	client := openai.NewClient(opts...)

	return &MessageOpenAIClient{
		model:      params.Model,
		ChatClient: &client,
	}
}

// GenerateMessage sends the system instruction and prompt as a single
// chat turn and returns the trimmed completion.
func (c *MessageOpenAIClient) GenerateMessage(
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

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	msgs = append(msgs, openai.UserMessage(prompt))

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(options.Model),
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		body.MaxTokens = openai.Int(int64(options.MaxTokens))
	}

	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
