package agentloop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/prompts"
	"github.com/promptqa/promptqa/internal/schema"
)

// finalEvaluation renders the agent_final template and parses the
// model's verdict. A failure here returns (nil, err); the caller
// treats a nil result as "no final evaluation exists" rather than
// retrying — spec.md §4.8 describes no repair step for this call.
func finalEvaluation(ctx context.Context, client llmclient.Client, goal string, snapshot schema.PageSnapshot, hist *history) (*schema.AgentFinalEvaluation, error) {
	user, err := prompts.Render(prompts.AgentFinal, map[string]string{
		"goal":        goal,
		"title":       snapshot.Title,
		"url":         snapshot.URL,
		"visibleText": snapshot.VisibleText,
		"history":     hist.format(),
	})
	if err != nil {
		return nil, fmt.Errorf("agentloop: render agent_final template: %w", err)
	}

	raw, err := client.Generate(ctx, "You are a deterministic QA evaluation assistant for a browser automation tool.", user)
	if err != nil {
		return nil, fmt.Errorf("agentloop: final evaluation: %w", err)
	}

	jsonText := llmclient.ExtractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("agentloop: final evaluation: no JSON object found in response")
	}

	var eval schema.AgentFinalEvaluation
	if err := json.Unmarshal([]byte(jsonText), &eval); err != nil {
		return nil, fmt.Errorf("agentloop: final evaluation: unmarshal: %w", err)
	}

	result := schema.EvaluationResult{Result: eval.Result, Confidence: eval.Confidence, Reason: eval.Reason}
	result.Clamp()
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("agentloop: final evaluation: %w", err)
	}
	eval.Confidence = result.Confidence
	return &eval, nil
}
