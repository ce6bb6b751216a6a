package looponce

import (
	"context"
	"fmt"

	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/planner"
	"github.com/promptqa/promptqa/internal/runner"
	"github.com/promptqa/promptqa/internal/schema"
)

// runLogin plans and executes a bounded login sequence ahead of the
// main plan, per spec.md §4.7 step 3. A failure here is non-fatal to
// the overall run — the caller records loginFailed and continues with
// whatever page state login left behind.
func runLogin(ctx context.Context, opts Options, run *runner.Runner, snapshot schema.PageSnapshot) error {
	steps, err := planner.Plan(ctx, opts.Client, planner.Input{
		Prompt:   opts.LoginPrompt,
		BaseURL:  opts.URL,
		Snapshot: snapshot,
		MaxSteps: config.LoginMaxSteps,
	})
	if err != nil {
		return fmt.Errorf("looponce: login plan: %w", err)
	}

	for i, step := range steps {
		result := run.ExecuteStep(step, i)
		if !result.Success {
			return fmt.Errorf("looponce: login step %d (%s) failed", i, step.Type)
		}
		if runner.Classify(result, snapshot.VisibleText) == runner.ClassHardFail {
			return fmt.Errorf("looponce: login step %d (%s) hard-failed", i, step.Type)
		}
		snapshot.VisibleText = result.VisibleText
	}
	return nil
}
