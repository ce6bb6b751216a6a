package agentloop

import (
	"context"
	"fmt"

	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/planner"
	"github.com/promptqa/promptqa/internal/runner"
	"github.com/promptqa/promptqa/internal/schema"
)

// runLogin plans and executes a bounded login sequence before the main
// observe-decide-act sub-loop, per spec.md §4.8's login sub-loop
// (cap LoginMaxSteps). A failure here is non-fatal — the caller
// records loginFailed and continues.
func runLogin(ctx context.Context, opts Options, run *runner.Runner, snapshot schema.PageSnapshot) error {
	steps, err := planner.Plan(ctx, opts.Client, planner.Input{
		Prompt:   opts.LoginPrompt,
		BaseURL:  opts.URL,
		Snapshot: snapshot,
		MaxSteps: config.LoginMaxSteps,
	})
	if err != nil {
		return fmt.Errorf("agentloop: login plan: %w", err)
	}

	for i, step := range steps {
		result := run.ExecuteStep(step, i)
		if !result.Success {
			return fmt.Errorf("agentloop: login step %d (%s) failed", i, step.Type)
		}
		if runner.Classify(result, snapshot.VisibleText) == runner.ClassHardFail {
			return fmt.Errorf("agentloop: login step %d (%s) hard-failed", i, step.Type)
		}
		snapshot.VisibleText = result.VisibleText
	}
	return nil
}
