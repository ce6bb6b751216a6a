package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationResultClamp(t *testing.T) {
	e := EvaluationResult{Result: ResultPass, Confidence: 1.5, Reason: "ok"}
	e.Clamp()
	assert.Equal(t, 1.0, e.Confidence)

	e = EvaluationResult{Result: ResultPass, Confidence: -0.2, Reason: "ok"}
	e.Clamp()
	assert.Equal(t, 0.0, e.Confidence)
}

func TestEvaluationResultValidate(t *testing.T) {
	require.NoError(t, EvaluationResult{Result: ResultPass, Confidence: 0.5, Reason: "ok"}.Validate())

	err := EvaluationResult{Result: "bogus", Confidence: 0.5, Reason: "ok"}.Validate()
	assert.ErrorContains(t, err, "unknown result")

	err = EvaluationResult{Result: ResultPass, Confidence: 1.1, Reason: "ok"}.Validate()
	assert.ErrorContains(t, err, "out of [0,1]")

	err = EvaluationResult{Result: ResultPass, Confidence: 0.5, Reason: ""}.Validate()
	assert.ErrorContains(t, err, "reason must not be empty")
}

func TestCaptureFrameHardFailConditions(t *testing.T) {
	f := CaptureFrame{PageErrors: []PageError{{Message: "boom"}}}
	assert.True(t, f.HasPageError())

	f = CaptureFrame{NetworkFailures: []NetworkFailure{{Status: 500, Method: "POST"}}}
	assert.True(t, f.HasMutatingServerError())

	f = CaptureFrame{NetworkFailures: []NetworkFailure{{Status: 500, Method: "GET"}}}
	assert.False(t, f.HasMutatingServerError())

	f = CaptureFrame{NetworkFailures: []NetworkFailure{{Status: 404, Method: "POST"}}}
	assert.False(t, f.HasMutatingServerError())
}
