package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const anthropicVersion = "2023-06-01"
const anthropicDefaultModel = "claude-3-5-sonnet-20241022"
const anthropicMaxResponseBytes = 10 * 1024 * 1024

// AnthropicClient talks to the Anthropic Messages API over plain
// net/http — no Go SDK for Anthropic exists to wrap.
type AnthropicClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	retry      RetryConfig
}

// NewAnthropicClient builds an AnthropicClient. model defaults to
// claude-3-5-sonnet when empty, per PROMPTQA_MODEL's documented default.
func NewAnthropicClient(apiKey, model string, logger *slog.Logger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llmclient: ANTHROPIC_API_KEY is not set")
	}
	if model == "" {
		model = anthropicDefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnthropicClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api.anthropic.com",
		httpClient: &http.Client{Timeout: 180 * time.Second},
		logger:     logger,
		retry:      DefaultRetryConfig(),
	}, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type anthropicImageContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) Generate(ctx context.Context, system, user string) (string, error) {
	return withRateLimitRetry(ctx, c.retry, func() (string, error) {
		content, _ := json.Marshal(user)
		return c.complete(ctx, system, content)
	})
}

func (c *AnthropicClient) GenerateWithImage(ctx context.Context, system, user, imageBase64, mimeType string) (string, error) {
	return withRateLimitRetry(ctx, c.retry, func() (string, error) {
		parts := []anthropicImageContent{{Type: "text", Text: user}}
		if imageBase64 != "" {
			parts = append(parts, anthropicImageContent{
				Type: "image",
				Source: &anthropicImageSource{
					Type:      "base64",
					MediaType: mimeType,
					Data:      imageBase64,
				},
			})
		}
		content, err := json.Marshal(parts)
		if err != nil {
			return "", NewFatalError(fmt.Errorf("anthropic: encode multipart content: %w", err))
		}
		return c.complete(ctx, system, content)
	})
}

func (c *AnthropicClient) complete(ctx context.Context, system string, userContent json.RawMessage) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: 4096,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: userContent},
		},
	})
	if err != nil {
		return "", NewFatalError(fmt.Errorf("anthropic: encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", NewFatalError(fmt.Errorf("anthropic: build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	c.logger.Debug("llm request", "provider", "anthropic", "model", c.model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", NewTransientError(fmt.Errorf("anthropic: request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, anthropicMaxResponseBytes))
	if err != nil {
		return "", NewTransientError(fmt.Errorf("anthropic: read response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", newRateLimitError(fmt.Errorf("anthropic: rate limited"), retryAfterFromHeader(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyAnthropicError(resp.StatusCode, respBody)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", NewFatalError(fmt.Errorf("anthropic: parse response: %w", err))
	}
	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}

func retryAfterFromHeader(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func classifyAnthropicError(status int, body []byte) error {
	var eb anthropicErrorBody
	_ = json.Unmarshal(body, &eb)
	msg := eb.Error.Message
	if msg == "" {
		msg = string(body)
	}
	err := fmt.Errorf("anthropic: status %d: %s", status, msg)
	switch {
	case status >= 500:
		return NewTransientError(err)
	default:
		return NewFatalError(err)
	}
}
