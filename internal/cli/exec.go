package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/promptqa/promptqa/internal/agentloop"
	"github.com/promptqa/promptqa/internal/browser"
	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/looponce"
	"github.com/promptqa/promptqa/internal/planner"
	"github.com/promptqa/promptqa/internal/report"
	"github.com/promptqa/promptqa/internal/schema"
)

// Exit codes, per spec.md §6. ExitPlannerFail mirrors planner.ExitCode
// rather than re-deriving it.
const (
	ExitPass        = 0
	ExitFail        = 1
	ExitUncertain   = 2
	ExitPlannerFail = planner.ExitCode
	ExitConfigError = 4
)

// runOne drives one named test (or the ad-hoc test/prompt pair from
// `promptqa test`) end to end: launch the browser, dispatch to the
// configured strategy, write the report artifacts, and return the
// exit code spec.md §6 assigns to the outcome.
func runOne(ctx context.Context, cfg *config.Config, client llmclient.Client, url, prompt, outputDir string) (*schema.RunSummary, int, error) {
	driver, err := browser.NewPlaywrightDriver(cfg.Headless)
	if err != nil {
		return nil, ExitConfigError, fmt.Errorf("cli: launch browser: %w", err)
	}
	defer driver.Close()

	var run *schema.RunSummary
	switch cfg.Strategy {
	case config.StrategyAgentLoop:
		run, err = agentloop.Run(ctx, agentloop.Options{
			Driver:      driver,
			Client:      client,
			URL:         url,
			Prompt:      prompt,
			Timeout:     cfg.Timeout,
			Cookie:      cfg.Auth.Cookie,
			LoginPrompt: cfg.Auth.LoginPrompt,
			OutputDir:   outputDir,
		})
	default:
		run, err = looponce.Run(ctx, looponce.Options{
			Driver:      driver,
			Client:      client,
			URL:         url,
			Prompt:      prompt,
			MaxSteps:    cfg.MaxSteps,
			Timeout:     cfg.Timeout,
			Cookie:      cfg.Auth.Cookie,
			LoginPrompt: cfg.Auth.LoginPrompt,
			OutputDir:   outputDir,
		})
	}

	if err != nil {
		var plannerErr *planner.Error
		if errors.As(err, &plannerErr) {
			// spec.md §7: "the final summary.json is always attempted,
			// including on planner failure" — persist a zero-step,
			// FAIL-verdict summary rather than skipping the artifact.
			failedRun := plannerFailureSummary(url, prompt, plannerErr)
			_ = report.Write(outputDir, failedRun, ExitPlannerFail)
			return failedRun, ExitPlannerFail, plannerErr
		}
		return nil, ExitConfigError, err
	}

	exitCode := exitCodeForVerdict(run.Summary)
	if writeErr := report.Write(outputDir, run, exitCode); writeErr != nil {
		return run, ExitConfigError, fmt.Errorf("cli: write report: %w", writeErr)
	}

	return run, exitCode, nil
}

// plannerFailureSummary builds the zero-step run record persisted
// when the planner never produces a usable plan.
func plannerFailureSummary(url, prompt string, plannerErr *planner.Error) *schema.RunSummary {
	now := time.Now()
	return &schema.RunSummary{
		RunID:      uuid.NewString(),
		URL:        url,
		Prompt:     prompt,
		Summary:    schema.ResultFail,
		StartedAt:  now,
		FinishedAt: now,
		Steps:      []schema.StepExecutionResult{},
		Bugs: []schema.BugReport{{
			Description: fmt.Sprintf("Planner error: %s", plannerErr.Error()),
			Severity:    schema.SeverityCritical,
			Evidence:    []string{plannerErr.Error()},
		}},
	}
}

// buildResultJSON renders the summary.json contract for the --json
// output path, reusing the same serializer written to disk.
func buildResultJSON(run *schema.RunSummary, exitCode int) ([]byte, error) {
	return report.GenerateJSON(run, exitCode)
}

func exitCodeForVerdict(v schema.VerdictResult) int {
	switch v {
	case schema.ResultPass:
		return ExitPass
	case schema.ResultFail:
		return ExitFail
	default:
		return ExitUncertain
	}
}

// worstExitCode returns the highest-severity exit code among codes,
// per spec.md §6's "run exits with the worst exit code seen" for
// `promptqa run`. Severity order: config/planner failure > FAIL >
// UNCERTAIN > PASS.
func worstExitCode(codes []int) int {
	worst := ExitPass
	for _, c := range codes {
		if severity(c) > severity(worst) {
			worst = c
		}
	}
	return worst
}

func severity(code int) int {
	switch code {
	case ExitPass:
		return 0
	case ExitUncertain:
		return 1
	case ExitFail:
		return 2
	case ExitPlannerFail, ExitConfigError:
		return 3
	default:
		return 3
	}
}

// testOutputDir partitions outputDir per test name, per spec.md §5
// ("callers must partition outputDir per test when running multiple
// tests").
func testOutputDir(base, name string) string {
	if name == "" {
		return base
	}
	return filepath.Join(base, name)
}
