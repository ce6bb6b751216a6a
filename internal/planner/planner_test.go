package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/schema"
)

const validPlanJSON = `[
  {"type": "goto", "description": "open the site", "value": "http://example.com"},
  {"type": "click", "description": "click login", "selector": {"strategy": "css", "value": "#login"}}
]`

func TestPlanSucceedsOnFirstValidResponse(t *testing.T) {
	client := llmclient.NewMockClient(validPlanJSON)

	steps, err := Plan(context.Background(), client, Input{
		Prompt:   "log in",
		BaseURL:  "http://example.com",
		MaxSteps: 12,
	})

	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, schema.StepGoto, steps[0].Type)
	assert.Equal(t, schema.StepClick, steps[1].Type)
}

func TestPlanRepairsUnknownSelectorStrategy(t *testing.T) {
	raw := `[
  {"type": "goto", "description": "open", "value": "http://example.com"},
  {"type": "type", "description": "enter email", "selector": {"strategy": "placeholder", "value": "Email"}, "value": "a@b.com"}
]`
	client := llmclient.NewMockClient(raw)

	steps, err := Plan(context.Background(), client, Input{Prompt: "sign up", MaxSteps: 12})

	require.NoError(t, err)
	require.Len(t, steps, 2)
	require.NotNil(t, steps[1].Selector)
	assert.Equal(t, schema.StrategyCSS, steps[1].Selector.Strategy)
	assert.Equal(t, "input[placeholder='Email']", steps[1].Selector.Value)
}

func TestPlanFallsBackToRepairTemplateOnUnparsableFirstResponse(t *testing.T) {
	client := llmclient.NewMockClient("not json at all", validPlanJSON)

	steps, err := Plan(context.Background(), client, Input{Prompt: "log in", MaxSteps: 12})

	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 2, client.CallCount())
}

func TestPlanReturnsPlannerErrorWhenRepairAlsoFails(t *testing.T) {
	client := llmclient.NewMockClient("not json", "still not json")

	_, err := Plan(context.Background(), client, Input{Prompt: "log in", MaxSteps: 12})

	require.Error(t, err)
	var plannerErr *Error
	require.True(t, errors.As(err, &plannerErr))
	assert.Equal(t, "repair", plannerErr.Stage)
}

func TestPlanRejectsPlanNotStartingWithGoto(t *testing.T) {
	raw := `[{"type": "click", "description": "click something", "selector": {"strategy": "css", "value": "#x"}}]`
	client := llmclient.NewMockClient(raw, raw)

	_, err := Plan(context.Background(), client, Input{Prompt: "go", MaxSteps: 12})

	require.Error(t, err)
	var plannerErr *Error
	require.True(t, errors.As(err, &plannerErr))
}
