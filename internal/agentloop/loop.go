// Package agentloop implements the agent-loop execution strategy:
// observe the current page, decide one next action (or declare the
// goal complete), act, and repeat — bounded by AgentLoopMaxSteps and a
// deadline, followed by one final evaluation regardless of how the
// sub-loop ended.
package agentloop

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/promptqa/promptqa/internal/browser"
	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/runner"
	"github.com/promptqa/promptqa/internal/schema"
	"github.com/promptqa/promptqa/internal/summary"
)

// Options bundles everything one agent-loop run needs. The caller owns
// Driver's lifetime (launch and Close).
type Options struct {
	Driver      browser.Driver
	Client      llmclient.Client
	URL         string
	Prompt      string // the goal decide()/finalEvaluation are judged against
	Timeout     time.Duration
	Cookie      string
	LoginPrompt string
	OutputDir   string
}

// Run executes the agent-loop strategy end to end. It returns an error
// only for failures outside the decide/act contract — navigation,
// cookie injection, or prescan failures the bootstrap step can't
// recover from. LLM parse failures inside the sub-loop are recorded as
// history entries and never propagate, per spec.md §4.8/§7.
func Run(ctx context.Context, opts Options) (*schema.RunSummary, error) {
	runID := uuid.NewString()
	startedAt := time.Now()
	deadline := startedAt.Add(opts.Timeout)

	capture := browser.NewCaptureCollector(opts.Driver)

	if opts.Cookie != "" {
		if err := opts.Driver.AddCookies(browser.ParseCookieString(opts.Cookie, opts.URL)); err != nil {
			return nil, fmt.Errorf("agentloop: add cookies: %w", err)
		}
	}

	snapshot, err := browser.Prescan(opts.Driver, opts.URL, config.NavigationTimeout)
	if err != nil {
		return nil, fmt.Errorf("agentloop: initial prescan: %w", err)
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

	hist := newHistory()
	results, done := mainSubLoop(ctx, opts, run, hist, deadline)

	finalEval := runFinalEvaluation(ctx, opts, hist, snapshot)

	if finalEval != nil && len(results) > 0 {
		results[len(results)-1].Evaluation = &schema.EvaluationResult{
			Result:     finalEval.Result,
			Confidence: finalEval.Confidence,
			Reason:     finalEval.Reason,
		}
	}

	verdict := summary.ComputeVerdict(results)
	if len(results) == 0 && done && finalEval != nil {
		verdict = finalEval.Result
	}

	finishedAt := time.Now()
	out := &schema.RunSummary{
		RunID:       runID,
		URL:         opts.URL,
		Prompt:      opts.Prompt,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		DurationMs:  finishedAt.Sub(startedAt).Milliseconds(),
		Steps:       results,
		LoginFailed: loginFailed,
	}
	out.Summary = verdict
	out.Bugs = summary.ExtractBugs(results)
	return out, nil
}

// mainSubLoop runs the bounded observe-decide-act sub-loop and reports
// whether the agent declared the goal done.
func mainSubLoop(ctx context.Context, opts Options, run *runner.Runner, hist *history, deadline time.Time) ([]schema.StepExecutionResult, bool) {
	results := make([]schema.StepExecutionResult, 0, config.AgentLoopMaxSteps)

	for iter := 0; iter < config.AgentLoopMaxSteps; iter++ {
		if time.Now().After(deadline) {
			break
		}

		snapshot, err := browser.PrescanCurrent(opts.Driver)
		if err != nil {
			break
		}

		screenshotBase64 := ""
		if data, err := opts.Driver.Screenshot(); err == nil {
			screenshotBase64 = base64.StdEncoding.EncodeToString(data)
		}

		resp, err := decide(ctx, opts.Client, opts.Prompt, *snapshot, screenshotBase64, hist)
		if err != nil {
			hist.append(schema.ActionHistoryEntry{
				StepIndex:   len(results),
				Action:      "decide",
				Description: "decide() failed to produce a valid response",
				Success:     false,
				Observation: err.Error(),
			})
			continue
		}

		if resp.Done {
			return results, true
		}

		action := *resp.Action

		if resp.Destructive {
			hist.append(schema.ActionHistoryEntry{
				StepIndex:   len(results),
				Action:      string(action.Type),
				Description: action.Description,
				Success:     false,
				Observation: "destructive_action_skipped",
			})
			continue
		}

		if blocked, note := hist.shouldBlock(snapshot.URL, action); blocked {
			hist.append(schema.ActionHistoryEntry{
				StepIndex:   len(results),
				Action:      string(action.Type),
				Description: action.Description,
				Success:     false,
				Observation: note,
			})
			continue
		}
		hist.recordKey(snapshot.URL, action)

		result := run.ExecuteStep(action, len(results))
		writeStepArtifact(opts.OutputDir, result.StepIndex, result)
		results = append(results, result)

		hist.append(schema.ActionHistoryEntry{
			StepIndex:   result.StepIndex,
			Action:      string(action.Type),
			Description: action.Description,
			Success:     result.Success,
			Observation: result.VisibleText,
		})
	}

	return results, false
}

// runFinalEvaluation always prescans the current page and asks for a
// final verdict, regardless of how the sub-loop ended, per spec.md
// §4.8. A failure here yields a nil evaluation, not an error.
func runFinalEvaluation(ctx context.Context, opts Options, hist *history, fallbackSnapshot *schema.PageSnapshot) *schema.AgentFinalEvaluation {
	snapshot := fallbackSnapshot
	if refreshed, err := browser.PrescanCurrent(opts.Driver); err == nil {
		snapshot = refreshed
	}

	eval, err := finalEvaluation(ctx, opts.Client, opts.Prompt, *snapshot, hist)
	if err != nil {
		return nil
	}
	return eval
}
