package llmclient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient drives the go-openai chat-completions transport.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
	retry  RetryConfig
}

// NewOpenAIClient builds an OpenAIClient. model defaults to gpt-4o when
// empty, per LLM_MODEL's documented default.
func NewOpenAIClient(apiKey, model string, logger *slog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llmclient: OPENAI_API_KEY is not set")
	}
	if model == "" {
		model = openai.GPT4o
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
		retry:  DefaultRetryConfig(),
	}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, system, user string) (string, error) {
	return withRateLimitRetry(ctx, c.retry, func() (string, error) {
		return c.complete(ctx, system, user, nil)
	})
}

func (c *OpenAIClient) GenerateWithImage(ctx context.Context, system, user, imageBase64, mimeType string) (string, error) {
	return withRateLimitRetry(ctx, c.retry, func() (string, error) {
		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: user},
		}
		if imageBase64 != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64),
				},
			})
		}
		return c.complete(ctx, system, "", parts)
	})
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string, multiContent []openai.ChatMessagePart) (string, error) {
	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if multiContent != nil {
		userMsg.MultiContent = multiContent
	} else {
		userMsg.Content = user
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			userMsg,
		},
		Temperature: 0,
	}

	c.logger.Debug("llm request", "provider", "openai", "model", c.model)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "rate limit") {
			return "", newRateLimitError(err, 0)
		}
		return "", NewTransientError(fmt.Errorf("openai: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", NewFatalError(fmt.Errorf("openai: no response choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
