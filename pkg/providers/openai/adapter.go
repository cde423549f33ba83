package openai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alemhq/alem/pkg/llm"
	"github.com/alemhq/alem/pkg/resilience"
)

const defaultModel = "gpt-4o-mini"

// Adapter backs the text service with the OpenAI chat completion API.
type Adapter struct {
	client *openai.Client
	model  string
}

func NewAdapter(apiKey, model string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	return &Adapter{client: openai.NewClient(apiKey), model: model}
}

func (a *Adapter) Name() string { return "openai" }

func (a *Adapter) Classify(ctx context.Context, prompt string) (string, error) {
	return a.chat(ctx, prompt, 0.1, 10)
}

func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	return a.chat(ctx, prompt, 0.7, 0)
}

func (a *Adapter) chat(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", resilience.RateLimitError{Provider: "openai", Message: apiErr.Message}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choice list")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ llm.Service = (*Adapter)(nil)
