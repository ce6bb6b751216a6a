package agentloop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/planner"
	"github.com/promptqa/promptqa/internal/prompts"
	"github.com/promptqa/promptqa/internal/schema"
)

// decide renders the agent_step template and parses the model's
// response into an AgentStepResponse. Unlike the planner and
// evaluator, decide() makes exactly one LLM call: on a parse or
// validation failure it returns an error rather than re-prompting, per
// spec.md §4.8 ("record a synthetic decide history entry ... no step
// produced").
func decide(ctx context.Context, client llmclient.Client, goal string, snapshot schema.PageSnapshot, screenshotBase64 string, hist *history) (*schema.AgentStepResponse, error) {
	system := "You are a deterministic browser-testing agent deciding one next action at a time."
	user, err := prompts.Render(prompts.AgentStep, map[string]string{
		"goal":        goal,
		"title":       snapshot.Title,
		"url":         snapshot.URL,
		"visibleText": snapshot.VisibleText,
		"elements":    prompts.FormatElements(snapshot.Elements),
		"history":     hist.format(),
	})
	if err != nil {
		return nil, fmt.Errorf("agentloop: render agent_step template: %w", err)
	}

	var raw string
	if screenshotBase64 != "" {
		raw, err = client.GenerateWithImage(ctx, system, user, screenshotBase64, "image/png")
	} else {
		raw, err = client.Generate(ctx, system, user)
	}
	if err != nil {
		return nil, fmt.Errorf("agentloop: decide: %w", err)
	}

	return parseDecision(raw)
}

func parseDecision(raw string) (*schema.AgentStepResponse, error) {
	jsonText := llmclient.ExtractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("agentloop: decide: no JSON object found in response")
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
		return nil, fmt.Errorf("agentloop: decide: unmarshal response: %w", err)
	}

	if done, _ := fields["done"].(bool); done {
		resp := &schema.AgentStepResponse{Done: true}
		resp.Summary, _ = fields["summary"].(string)
		if resp.Summary == "" {
			return nil, fmt.Errorf("agentloop: decide: done response missing summary")
		}
		return resp, nil
	}

	actionMap, ok := fields["action"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("agentloop: decide: missing action")
	}
	planner.RepairRawStep(actionMap)

	actionJSON, err := json.Marshal(actionMap)
	if err != nil {
		return nil, fmt.Errorf("agentloop: decide: re-marshal action: %w", err)
	}
	var action schema.Step
	if err := json.Unmarshal(actionJSON, &action); err != nil {
		return nil, fmt.Errorf("agentloop: decide: unmarshal action: %w", err)
	}
	if action.Type == schema.StepGoto {
		return nil, fmt.Errorf("agentloop: decide: goto is not a valid agent-loop action")
	}
	if err := action.Validate(); err != nil {
		return nil, fmt.Errorf("agentloop: decide: %w", err)
	}

	destructive, _ := fields["destructive"].(bool)
	return &schema.AgentStepResponse{Done: false, Action: &action, Destructive: destructive}, nil
}
