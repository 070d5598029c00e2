package recommend

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAI backs the completer contract with the OpenAI chat completions API.
// A nil client (empty API key) fails every call, which the session degrades
// to its fallback turn.
type OpenAI struct {
	client *openai.Client
}

func NewOpenAI(apiKey string) *OpenAI {
	if apiKey == "" {
		return &OpenAI{client: nil}
	}

	c := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAI{client: &c}
}

func (o *OpenAI) Complete(ctx context.Context, model, prompt string) (string, error) {
	if o.client == nil {
		return "", ErrNotConfigured
	}

	//nolint:exhaustruct
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
