// Package looponce implements the plan-once execution strategy:
// prescan, plan the whole step sequence up front, execute each step
// with bounded retry, evaluate, and summarize — all against one
// deadline computed at the start of the run.
package looponce

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/promptqa/promptqa/internal/browser"
	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/evaluator"
	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/planner"
	"github.com/promptqa/promptqa/internal/runner"
	"github.com/promptqa/promptqa/internal/schema"
	"github.com/promptqa/promptqa/internal/summary"
)

// Options bundles everything one plan-once run needs. The caller owns
// Driver's lifetime (launch and Close).
type Options struct {
	Driver      browser.Driver
	Client      llmclient.Client
	URL         string
	Prompt      string
	MaxSteps    int
	Timeout     time.Duration
	Cookie      string
	LoginPrompt string
	OutputDir   string
}

// Run executes the plan-once strategy end to end and returns the
// run's summary. A returned error is either a *planner.Error (exit
// code 3) or a wrapped cookie-injection / initial-prescan failure;
// every other failure mode is captured inside the summary instead of
// propagated, per spec.md §4.7/§7.
func Run(ctx context.Context, opts Options) (*schema.RunSummary, error) {
	runID := uuid.NewString()
	startedAt := time.Now()
	deadline := startedAt.Add(opts.Timeout)

	capture := browser.NewCaptureCollector(opts.Driver)

	if opts.Cookie != "" {
		if err := opts.Driver.AddCookies(browser.ParseCookieString(opts.Cookie, opts.URL)); err != nil {
			return nil, fmt.Errorf("looponce: add cookies: %w", err)
		}
	}

	snapshot, err := browser.Prescan(opts.Driver, opts.URL, config.NavigationTimeout)
	if err != nil {
		return nil, fmt.Errorf("looponce: initial prescan: %w", err)
	}

	screenshotDir := filepath.Join(opts.OutputDir, "screenshots")
	run := runner.New(opts.Driver, capture, screenshotDir)

	loginFailed := false
	if opts.LoginPrompt != "" {
		if err := runLogin(ctx, opts, run, *snapshot); err != nil {
			loginFailed = true
		}
		_ = opts.Driver.WaitForLoadState("networkidle", 5*time.Second)
		if refreshed, err := browser.PrescanCurrent(opts.Driver); err == nil {
			snapshot = refreshed
		}
	}

	steps, planErr := planner.Plan(ctx, opts.Client, planner.Input{
		Prompt:   opts.Prompt,
		BaseURL:  opts.URL,
		Snapshot: *snapshot,
		MaxSteps: opts.MaxSteps,
	})
	if planErr != nil {
		return nil, planErr
	}

	results := executeMainSteps(ctx, opts, run, steps, snapshot.VisibleText, deadline)

	finishedAt := time.Now()
	result := &schema.RunSummary{
		RunID:       runID,
		URL:         opts.URL,
		Prompt:      opts.Prompt,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		DurationMs:  finishedAt.Sub(startedAt).Milliseconds(),
		Steps:       results,
		LoginFailed: loginFailed,
	}
	result.Summary = summary.ComputeVerdict(results)
	result.Bugs = summary.ExtractBugs(results)

	return result, nil
}

// executeMainSteps runs the plan-once retry/evaluate/classify sequence
// from spec.md §4.7 step 5, returning every step's result in order.
func executeMainSteps(ctx context.Context, opts Options, run *runner.Runner, steps []schema.Step, initialVisibleText string, deadline time.Time) []schema.StepExecutionResult {
	results := make([]schema.StepExecutionResult, 0, len(steps))
	prevVisibleText := initialVisibleText

	for i, step := range steps {
		if time.Now().After(deadline) {
			break
		}

		result := run.ExecuteStep(step, i)
		class := runner.Classify(result, prevVisibleText)

		switch class {
		case runner.ClassElementNotFound:
			if time.Now().Add(config.RetryWait).Before(deadline) {
				time.Sleep(config.RetryWait)
				result = run.ExecuteStep(step, i)
			}
		case runner.ClassActionNoEffect:
			result = run.ExecuteStep(step, i)
		}

		if time.Now().Before(deadline) {
			eval := evaluator.Evaluate(ctx, opts.Client, result)
			result.Evaluation = &eval
		}

		writeStepArtifact(opts.OutputDir, i, result)
		results = append(results, result)

		// Re-classify against the *same* prevVisibleText used above,
		// before it advances to this step's own visible text — see
		// DESIGN.md's Open Question (a)/(b) resolution.
		hardFail := runner.Classify(result, prevVisibleText) == runner.ClassHardFail
		prevVisibleText = result.VisibleText

		if hardFail {
			break
		}
	}

	return results
}
