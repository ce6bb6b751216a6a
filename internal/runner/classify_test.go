package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptqa/promptqa/internal/schema"
)

func TestClassifyFailedWithoutHardFailIsElementNotFound(t *testing.T) {
	result := schema.StepExecutionResult{Success: false, Step: schema.Step{Type: schema.StepClick}}
	assert.Equal(t, ClassElementNotFound, Classify(result, "prev"))
}

func TestClassifyFailedWithPageErrorIsHardFail(t *testing.T) {
	result := schema.StepExecutionResult{
		Success: false,
		Step:    schema.Step{Type: schema.StepClick},
		Capture: schema.CaptureFrame{PageErrors: []schema.PageError{{Message: "crash"}}},
	}
	assert.Equal(t, ClassHardFail, Classify(result, "prev"))
}

func TestClassifyFailedWithMutating5xxIsHardFail(t *testing.T) {
	result := schema.StepExecutionResult{
		Success: false,
		Step:    schema.Step{Type: schema.StepClick},
		Capture: schema.CaptureFrame{NetworkFailures: []schema.NetworkFailure{{Status: 500, Method: "POST"}}},
	}
	assert.Equal(t, ClassHardFail, Classify(result, "prev"))
}

func TestClassifySuccessWithPageErrorIsHardFail(t *testing.T) {
	result := schema.StepExecutionResult{
		Success: true,
		Step:    schema.Step{Type: schema.StepClick},
		Capture: schema.CaptureFrame{PageErrors: []schema.PageError{{Message: "late crash"}}},
	}
	assert.Equal(t, ClassHardFail, Classify(result, "prev"))
}

func TestClassifySuccessWithNoVisibleTextChangeIsActionNoEffect(t *testing.T) {
	result := schema.StepExecutionResult{
		Success:     true,
		Step:        schema.Step{Type: schema.StepClick},
		VisibleText: "same text",
	}
	assert.Equal(t, ClassActionNoEffect, Classify(result, "same text"))
}

func TestClassifyGotoIsExemptFromActionNoEffect(t *testing.T) {
	result := schema.StepExecutionResult{
		Success:     true,
		Step:        schema.Step{Type: schema.StepGoto},
		VisibleText: "same text",
	}
	assert.Equal(t, ClassNone, Classify(result, "same text"))
}

func TestClassifySuccessWithChangedTextIsNone(t *testing.T) {
	result := schema.StepExecutionResult{
		Success:     true,
		Step:        schema.Step{Type: schema.StepClick},
		VisibleText: "new text",
	}
	assert.Equal(t, ClassNone, Classify(result, "old text"))
}
