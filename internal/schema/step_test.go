package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorHintValidate(t *testing.T) {
	require.NoError(t, SelectorHint{Strategy: StrategyCSS, Value: "#login"}.Validate())
	require.NoError(t, SelectorHint{Strategy: StrategyRole, Value: "Submit", Role: "button"}.Validate())

	err := SelectorHint{Strategy: StrategyRole, Value: "Submit"}.Validate()
	assert.ErrorContains(t, err, "requires role")

	err = SelectorHint{Strategy: "bogus", Value: "x"}.Validate()
	assert.ErrorContains(t, err, "unknown strategy")

	err = SelectorHint{Strategy: StrategyCSS, Value: ""}.Validate()
	assert.ErrorContains(t, err, "must not be empty")
}

func TestStepValidate(t *testing.T) {
	require.NoError(t, Step{Type: StepGoto, Description: "open", Value: "http://example.test"}.Validate())

	err := Step{Type: StepGoto, Description: "open"}.Validate()
	assert.ErrorContains(t, err, "value (URL)")

	err = Step{Type: StepClick, Description: "click"}.Validate()
	assert.ErrorContains(t, err, "selector is required")

	err = Step{
		Type:        StepTypeInput,
		Description: "type",
		Selector:    &SelectorHint{Strategy: StrategyCSS, Value: "input"},
	}.Validate()
	assert.ErrorContains(t, err, "value is required")

	require.NoError(t, Step{
		Type:        StepWait,
		Description: "wait",
		Value:       "500",
	}.Validate())

	err = Step{Type: StepWait, Description: "wait"}.Validate()
	assert.ErrorContains(t, err, "either selector or a numeric value")
}

func TestValidatePlan(t *testing.T) {
	goto_ := Step{Type: StepGoto, Description: "open", Value: "http://x"}
	expect := Step{Type: StepExpectText, Description: "check", Value: "hi"}

	require.NoError(t, ValidatePlan([]Step{goto_, expect}, 5))

	err := ValidatePlan(nil, 5)
	assert.ErrorContains(t, err, "at least one step")

	err = ValidatePlan([]Step{expect, goto_}, 5)
	assert.ErrorContains(t, err, "first step must be goto")

	many := make([]Step, 0, 6)
	many = append(many, goto_)
	for i := 0; i < 5; i++ {
		many = append(many, expect)
	}
	err = ValidatePlan(many, 5)
	assert.ErrorContains(t, err, "exceeds MAX_STEPS")
}
