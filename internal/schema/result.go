package schema

import "fmt"

// VerdictResult is one of PASS, FAIL, UNCERTAIN — both a per-step
// evaluation outcome and the run-level verdict.
type VerdictResult string

const (
	ResultPass      VerdictResult = "PASS"
	ResultFail      VerdictResult = "FAIL"
	ResultUncertain VerdictResult = "UNCERTAIN"
)

// EvaluationResult is the Evaluator's per-step verdict.
type EvaluationResult struct {
	Result     VerdictResult `json:"result"`
	Confidence float64       `json:"confidence"`
	Reason     string        `json:"reason"`
}

// Clamp restricts Confidence to [0,1] in place, per spec.md §3
// ("Confidence outside [0,1] must be clamped before validation").
func (e *EvaluationResult) Clamp() {
	if e.Confidence < 0 {
		e.Confidence = 0
	}
	if e.Confidence > 1 {
		e.Confidence = 1
	}
}

// Validate enforces the EvaluationResult invariants from spec.md §8.
func (e EvaluationResult) Validate() error {
	switch e.Result {
	case ResultPass, ResultFail, ResultUncertain:
	default:
		return fmt.Errorf("evaluation: unknown result %q", e.Result)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("evaluation: confidence %f out of [0,1]", e.Confidence)
	}
	if e.Reason == "" {
		return fmt.Errorf("evaluation: reason must not be empty")
	}
	return nil
}

// StepExecutionResult is the record produced by the Runner for one
// executed step, optionally carrying the Evaluator's verdict.
type StepExecutionResult struct {
	StepIndex      int               `json:"stepIndex"`
	Step           Step              `json:"step"`
	Success        bool              `json:"success"`
	URL            string            `json:"url"`
	ScreenshotPath string            `json:"screenshotPath,omitempty"`
	VisibleText    string            `json:"visibleText"`
	Capture        CaptureFrame      `json:"capture"`
	Evaluation     *EvaluationResult `json:"evaluation,omitempty"`
}
