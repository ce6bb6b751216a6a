// Package llmclient provides a provider-agnostic LLM client used by the
// planner, evaluator, and agent loop. Three providers implement Client:
// Anthropic, OpenAI, and a deterministic mock for tests.
package llmclient

import "context"

// Client is the interface every provider satisfies. Generate sends a
// system/user prompt pair and returns the raw model text.
// GenerateWithImage additionally attaches a base64-encoded image for
// providers/steps that need visual context (agent-loop decide() calls).
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
	GenerateWithImage(ctx context.Context, system, user, imageBase64, mimeType string) (string, error)
}
