package runner

import "github.com/promptqa/promptqa/internal/schema"

// FailureClass is the runner's deterministic classification of a
// step-execution outcome, driving the plan-once loop's retry policy.
type FailureClass string

const (
	ClassNone            FailureClass = "none"
	ClassElementNotFound FailureClass = "element_not_found"
	ClassActionNoEffect  FailureClass = "action_no_effect"
	ClassHardFail        FailureClass = "hard_fail"
)

// Classify implements the table in spec.md §4.9, comparing against the
// visible text captured before this step ran.
func Classify(result schema.StepExecutionResult, prevVisibleText string) FailureClass {
	if !result.Success {
		if detectHardFail(result) {
			return ClassHardFail
		}
		return ClassElementNotFound
	}

	if result.Capture.HasPageError() {
		return ClassHardFail
	}

	if isEffectCheckedStepType(result.Step.Type) && result.VisibleText == prevVisibleText {
		return ClassActionNoEffect
	}

	return ClassNone
}

// detectHardFail reports whether a failed or errored result should be
// treated as unrecoverable: any page error, or any 5xx status on a
// mutating HTTP method.
func detectHardFail(result schema.StepExecutionResult) bool {
	return result.Capture.HasPageError() || result.Capture.HasMutatingServerError()
}

// isEffectCheckedStepType reports whether a step type is expected to
// change visible text — goto/wait/expect_text are exempt from the
// action_no_effect check since they don't promise a DOM change.
func isEffectCheckedStepType(t schema.StepType) bool {
	switch t {
	case schema.StepGoto, schema.StepWait, schema.StepExpectText:
		return false
	default:
		return true
	}
}
