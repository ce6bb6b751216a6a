// Package evaluator renders one StepExecutionResult as an LLM prompt
// and parses the model's judgment into a validated EvaluationResult,
// never propagating a failure — a bad or unparsable response degrades
// to UNCERTAIN rather than aborting the run.
package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/prompts"
	"github.com/promptqa/promptqa/internal/schema"
)

const maxVisibleTextChars = 2000

// fallback is returned whenever the model's response can't be coaxed
// into a valid EvaluationResult, per spec.md §4.6.
var fallback = schema.EvaluationResult{
	Result:     schema.ResultUncertain,
	Confidence: 0,
	Reason:     "Evaluator failed to produce a valid response",
}

// Evaluate judges one executed step. It never returns an error: on any
// failure to render, call, or parse, it logs nothing itself and simply
// returns fallback (callers that want visibility should log before
// discarding the error path themselves).
func Evaluate(ctx context.Context, client llmclient.Client, result schema.StepExecutionResult) schema.EvaluationResult {
	system := "You are a deterministic QA evaluation assistant for a browser automation tool."
	user, err := render(result)
	if err != nil {
		return fallback
	}

	raw, err := client.Generate(ctx, system, user)
	if err != nil {
		return fallback
	}

	eval, err := parseAndValidate(raw)
	if err == nil {
		return eval
	}

	repairUser, renderErr := prompts.Render(prompts.EvaluatorRepair, map[string]string{
		"rawOutput": raw,
		"error":     err.Error(),
	})
	if renderErr != nil {
		return fallback
	}

	repairedRaw, genErr := client.Generate(ctx, system, repairUser)
	if genErr != nil {
		return fallback
	}

	eval, err = parseAndValidate(repairedRaw)
	if err != nil {
		return fallback
	}
	return eval
}

func render(result schema.StepExecutionResult) (string, error) {
	return prompts.Render(prompts.Evaluator, map[string]string{
		"description":     result.Step.Description,
		"expectedAction":  expectedActionPhrase(result.Step.Type),
		"success":         strconv.FormatBool(result.Success),
		"url":             result.URL,
		"visibleText":     truncate(result.VisibleText, maxVisibleTextChars),
		"consoleErrors":   formatConsoleErrors(result.Capture.ConsoleEntries),
		"networkFailures": formatNetworkFailures(result.Capture.NetworkFailures),
		"pageErrors":      formatPageErrors(result.Capture.PageErrors),
	})
}

// expectedActionPhrase derives the human-readable "expected effect"
// phrase the evaluator template wants from the step's type, per
// spec.md §4.6 ("expected-action phrase derived from step type").
func expectedActionPhrase(t schema.StepType) string {
	switch t {
	case schema.StepGoto:
		return "the page navigates to the target URL"
	case schema.StepClick:
		return "the clicked element responds (navigation, state change, or visible update)"
	case schema.StepTypeInput:
		return "the input field receives the typed value"
	case schema.StepSelect:
		return "the selected option is applied"
	case schema.StepUpload:
		return "the file is attached to the upload control"
	case schema.StepWait:
		return "the awaited condition is satisfied"
	case schema.StepExpectText:
		return "the expected text becomes visible on the page"
	case schema.StepPressKey:
		return "the key press is registered by the focused element"
	default:
		return "the action completes without error"
	}
}

func parseAndValidate(raw string) (schema.EvaluationResult, error) {
	jsonText := llmclient.ExtractJSON(raw)
	if jsonText == "" {
		return schema.EvaluationResult{}, fmt.Errorf("extract JSON object: no object found in response")
	}

	var eval schema.EvaluationResult
	if err := json.Unmarshal([]byte(jsonText), &eval); err != nil {
		return schema.EvaluationResult{}, fmt.Errorf("unmarshal evaluation: %w", err)
	}

	eval.Clamp()
	if err := eval.Validate(); err != nil {
		return schema.EvaluationResult{}, err
	}
	return eval, nil
}

// DetectHardFail reports a non-empty reason when result is a
// deterministic hard failure: the step itself failed, any page error
// was captured, or any 5xx status occurred on a mutating method.
func DetectHardFail(result schema.StepExecutionResult) string {
	if !result.Success {
		return "step execution failed"
	}
	if result.Capture.HasPageError() {
		return "page error captured"
	}
	if result.Capture.HasMutatingServerError() {
		return "server error on a mutating request"
	}
	return ""
}

func formatConsoleErrors(entries []schema.ConsoleEntry) string {
	if len(entries) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("Console %s: %s", e.Level, e.Text))
	}
	return strings.Join(lines, "\n")
}

func formatNetworkFailures(failures []schema.NetworkFailure) string {
	if len(failures) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(failures))
	for _, f := range failures {
		lines = append(lines, fmt.Sprintf("Network %s %s → %d", f.Method, f.URL, f.Status))
	}
	return strings.Join(lines, "\n")
}

func formatPageErrors(errs []schema.PageError) string {
	if len(errs) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("Page error: %s", e.Message))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
