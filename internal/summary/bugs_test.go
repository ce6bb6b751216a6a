package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptqa/promptqa/internal/schema"
)

func TestExtractBugsSkipsCleanSteps(t *testing.T) {
	results := []schema.StepExecutionResult{
		{Success: true, Evaluation: eval(schema.ResultPass)},
	}
	assert.Empty(t, ExtractBugs(results))
}

func TestExtractBugsEmitsCriticalOnFailure(t *testing.T) {
	results := []schema.StepExecutionResult{
		{
			StepIndex: 2,
			Step:      schema.Step{Type: schema.StepClick, Description: "click submit"},
			Success:   false,
		},
	}
	bugs := ExtractBugs(results)
	require.Len(t, bugs, 1)
	assert.Equal(t, 2, bugs[0].StepIndex)
	assert.Equal(t, schema.SeverityCritical, bugs[0].Severity)
}

func TestExtractBugsEmitsMajorOnFailEvaluationWithoutPageError(t *testing.T) {
	results := []schema.StepExecutionResult{
		{
			Step:       schema.Step{Type: schema.StepExpectText, Description: "check confirmation"},
			Success:    true,
			Evaluation: eval(schema.ResultFail),
		},
	}
	bugs := ExtractBugs(results)
	require.Len(t, bugs, 1)
	assert.Equal(t, schema.SeverityMajor, bugs[0].Severity)
}

func TestExtractBugsEscalatesToCriticalWithPageError(t *testing.T) {
	results := []schema.StepExecutionResult{
		{
			Step:       schema.Step{Type: schema.StepClick, Description: "click checkout"},
			Success:    true,
			Evaluation: eval(schema.ResultFail),
			Capture:    schema.CaptureFrame{PageErrors: []schema.PageError{{Message: "TypeError: x is undefined"}}},
		},
	}
	bugs := ExtractBugs(results)
	require.Len(t, bugs, 1)
	assert.Equal(t, schema.SeverityCritical, bugs[0].Severity)
	assert.Contains(t, bugs[0].Evidence, "Page error: TypeError: x is undefined")
}

func TestExtractBugsCollectsAllEvidenceKinds(t *testing.T) {
	results := []schema.StepExecutionResult{
		{
			Step:    schema.Step{Type: schema.StepClick, Description: "submit order"},
			Success: false,
			Capture: schema.CaptureFrame{
				ConsoleEntries:  []schema.ConsoleEntry{{Level: schema.ConsoleError, Text: "uncaught ReferenceError"}},
				NetworkFailures: []schema.NetworkFailure{{Method: "POST", URL: "/api/order", Status: 500}},
				PageErrors:      []schema.PageError{{Message: "crashed"}},
			},
		},
	}
	bugs := ExtractBugs(results)
	require.Len(t, bugs, 1)
	assert.ElementsMatch(t, []string{
		"Console error: uncaught ReferenceError",
		"Network POST /api/order → 500",
		"Page error: crashed",
	}, bugs[0].Evidence)
}

func TestExtractBugsFallsBackToTypeWhenDescriptionMissing(t *testing.T) {
	results := []schema.StepExecutionResult{
		{Step: schema.Step{Type: schema.StepGoto}, Success: false},
	}
	bugs := ExtractBugs(results)
	require.Len(t, bugs, 1)
	assert.Equal(t, "goto step", bugs[0].Description)
}
