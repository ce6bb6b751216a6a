package summary

import (
	"fmt"

	"github.com/promptqa/promptqa/internal/schema"
)

// ExtractBugs implements spec.md §4.11: a BugReport is emitted for a
// step that failed outright, or whose evaluation came back FAIL.
// Severity is critical when the step failed or any page error was
// captured, major otherwise.
func ExtractBugs(results []schema.StepExecutionResult) []schema.BugReport {
	var bugs []schema.BugReport
	for _, r := range results {
		failedEval := r.Evaluation != nil && r.Evaluation.Result == schema.ResultFail
		if r.Success && !failedEval {
			continue
		}

		description := r.Step.Description
		if description == "" {
			description = fmt.Sprintf("%s step", r.Step.Type)
		}

		severity := schema.SeverityMajor
		if !r.Success || len(r.Capture.PageErrors) > 0 {
			severity = schema.SeverityCritical
		}

		bugs = append(bugs, schema.BugReport{
			StepIndex:   r.StepIndex,
			Description: description,
			Severity:    severity,
			Evidence:    CollectEvidence(r),
		})
	}
	return bugs
}

// CollectEvidence renders a step's captured console/network/page
// errors into the fixed evidence-line formats spec.md §4.11 names.
// Exported because §4.12's report contract reuses the identical
// per-step error lines for its steps[].errors field.
func CollectEvidence(r schema.StepExecutionResult) []string {
	var lines []string
	for _, c := range r.Capture.ConsoleEntries {
		if c.Level != schema.ConsoleError {
			continue
		}
		lines = append(lines, fmt.Sprintf("Console error: %s", c.Text))
	}
	for _, n := range r.Capture.NetworkFailures {
		lines = append(lines, fmt.Sprintf("Network %s %s → %d", n.Method, n.URL, n.Status))
	}
	for _, p := range r.Capture.PageErrors {
		lines = append(lines, fmt.Sprintf("Page error: %s", p.Message))
	}
	return lines
}
