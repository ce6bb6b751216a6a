// Package planner turns a goal and a page snapshot into a validated,
// bounded sequence of deterministic Steps by prompting an LLM and
// repairing its output against the Step schema.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/prompts"
	"github.com/promptqa/promptqa/internal/schema"
)

// Input carries everything the planner needs to render the planner
// template and bound the resulting plan.
type Input struct {
	Prompt           string
	BaseURL          string
	Snapshot         schema.PageSnapshot
	ScreenshotBase64 string // optional; empty means no vision call
	ScreenshotMIME   string
	MaxSteps         int
}

// Plan renders the planner template, calls client, and returns a
// validated Step list. On a parse or validation failure it renders the
// planner_repair template once with the prior output and error; a
// second failure returns a *Error (exit code 3).
func Plan(ctx context.Context, client llmclient.Client, in Input) ([]schema.Step, error) {
	system := "You are a deterministic QA planning assistant for a browser automation tool."
	user, err := render(in)
	if err != nil {
		return nil, fmt.Errorf("planner: render template: %w", err)
	}

	raw, err := generate(ctx, client, system, user, in.ScreenshotBase64, in.ScreenshotMIME)
	if err != nil {
		return nil, &Error{Stage: "initial", Err: err}
	}

	steps, err := parseAndValidate(raw, in.MaxSteps)
	if err == nil {
		return steps, nil
	}

	repairUser, renderErr := prompts.Render(prompts.PlannerRepair, map[string]string{
		"rawOutput": raw,
		"error":     err.Error(),
	})
	if renderErr != nil {
		return nil, &Error{Stage: "repair", Err: renderErr}
	}

	repairedRaw, genErr := client.Generate(ctx, system, repairUser)
	if genErr != nil {
		return nil, &Error{Stage: "repair", Err: genErr}
	}

	steps, err = parseAndValidate(repairedRaw, in.MaxSteps)
	if err != nil {
		return nil, &Error{Stage: "repair", Err: err}
	}
	return steps, nil
}

func render(in Input) (string, error) {
	return prompts.Render(prompts.Planner, map[string]string{
		"prompt":          in.Prompt,
		"baseUrl":         in.BaseURL,
		"title":           in.Snapshot.Title,
		"url":             in.Snapshot.URL,
		"metaDescription": in.Snapshot.MetaDescription,
		"visibleText":     in.Snapshot.VisibleText,
		"elements":        prompts.FormatElements(in.Snapshot.Elements),
	})
}

func generate(ctx context.Context, client llmclient.Client, system, user, imageBase64, mime string) (string, error) {
	if imageBase64 != "" {
		return client.GenerateWithImage(ctx, system, user, imageBase64, mime)
	}
	return client.Generate(ctx, system, user)
}

// parseAndValidate extracts a JSON array from raw LLM text, applies the
// pre-validation repair pass, converts it to []schema.Step, and
// validates the resulting plan.
func parseAndValidate(raw string, maxSteps int) ([]schema.Step, error) {
	jsonText := llmclient.ExtractJSONArray(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("extract JSON array: no array found in response")
	}

	var rawSteps []interface{}
	if err := json.Unmarshal([]byte(jsonText), &rawSteps); err != nil {
		return nil, fmt.Errorf("unmarshal step array: %w", err)
	}

	repairRawSteps(rawSteps)

	repaired, err := json.Marshal(rawSteps)
	if err != nil {
		return nil, fmt.Errorf("re-marshal repaired steps: %w", err)
	}

	var steps []schema.Step
	if err := json.Unmarshal(repaired, &steps); err != nil {
		return nil, fmt.Errorf("unmarshal repaired steps into Step: %w", err)
	}

	if err := schema.ValidatePlan(steps, maxSteps); err != nil {
		return nil, err
	}
	return steps, nil
}
