// Package runner executes one deterministic Step against a Driver,
// producing a StepExecutionResult with screenshot, visible-text, and
// capture artifacts — regardless of whether the action itself succeeded.
package runner

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/promptqa/promptqa/internal/browser"
	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/schema"
)

const maxVisibleTextChars = 8000

// Runner executes steps against a Driver and a CaptureCollector
// attached to the same page, writing screenshots under screenshotDir.
type Runner struct {
	driver        browser.Driver
	capture       *browser.CaptureCollector
	screenshotDir string
	actionTimeout time.Duration
	navTimeout    time.Duration
}

func New(driver browser.Driver, capture *browser.CaptureCollector, screenshotDir string) *Runner {
	return &Runner{
		driver:        driver,
		capture:       capture,
		screenshotDir: screenshotDir,
		actionTimeout: config.ActionTimeout,
		navTimeout:    config.NavigationTimeout,
	}
}

// ExecuteStep runs step (index-th in the plan) and always returns a
// StepExecutionResult, even when the action itself fails — Success is
// false iff the action threw.
func (r *Runner) ExecuteStep(step schema.Step, index int) schema.StepExecutionResult {
	r.capture.Flush()

	actionErr := r.dispatch(step)

	result := schema.StepExecutionResult{
		StepIndex: index,
		Step:      step,
		Success:   actionErr == nil,
		URL:       r.driver.URL(),
	}

	if path, err := r.captureScreenshot(index); err == nil {
		result.ScreenshotPath = path
	}

	if text, err := r.readVisibleText(); err == nil {
		result.VisibleText = text
	}

	result.Capture = r.capture.Flush()

	if actionErr != nil {
		result.Capture.PageErrors = append(result.Capture.PageErrors, schema.PageError{Message: actionErr.Error()})
	}

	return result
}

func (r *Runner) dispatch(step schema.Step) error {
	timeout := r.actionTimeout
	if step.Timeout > 0 {
		timeout = time.Duration(step.Timeout) * time.Millisecond
	}

	switch step.Type {
	case schema.StepGoto:
		return r.driver.Goto(step.Value, r.navTimeout)

	case schema.StepClick:
		loc, err := r.driver.Resolve(*step.Selector)
		if err != nil {
			return err
		}
		return loc.Click(timeout)

	case schema.StepTypeInput:
		loc, err := r.driver.Resolve(*step.Selector)
		if err != nil {
			return err
		}
		return loc.Fill(step.Value, timeout)

	case schema.StepSelect:
		loc, err := r.driver.Resolve(*step.Selector)
		if err != nil {
			return err
		}
		return loc.SelectOption(step.Value, timeout)

	case schema.StepUpload:
		loc, err := r.driver.Resolve(*step.Selector)
		if err != nil {
			return err
		}
		return loc.SetInputFiles(step.Value, timeout)

	case schema.StepWait:
		return r.wait(step, timeout)

	case schema.StepExpectText:
		return r.expectText(step, timeout)

	case schema.StepPressKey:
		loc, err := r.driver.Resolve(*step.Selector)
		if err != nil {
			return err
		}
		return loc.PressKey(step.Value, timeout)

	default:
		return fmt.Errorf("runner: unknown step type %q", step.Type)
	}
}

func (r *Runner) wait(step schema.Step, timeout time.Duration) error {
	if step.Selector != nil {
		loc, err := r.driver.Resolve(*step.Selector)
		if err != nil {
			return err
		}
		return loc.WaitFor(timeout)
	}

	ms, err := strconv.Atoi(step.Value)
	if err != nil {
		return fmt.Errorf("runner: wait step has no selector and non-numeric value %q", step.Value)
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

func (r *Runner) expectText(step schema.Step, timeout time.Duration) error {
	hint := schema.SelectorHint{Strategy: schema.StrategyCSS, Value: "body"}
	if step.Selector != nil {
		hint = *step.Selector
	}

	loc, err := r.driver.Resolve(hint)
	if err != nil {
		return err
	}
	if err := loc.WaitFor(timeout); err != nil {
		return fmt.Errorf("runner: expect_text: selector never became visible: %w", err)
	}

	text, err := loc.InnerText()
	if err != nil {
		return fmt.Errorf("runner: expect_text: read text: %w", err)
	}
	if !strings.Contains(text, step.Value) {
		return fmt.Errorf("runner: expect_text: %q not found in %q", step.Value, truncate(text, 200))
	}
	return nil
}

func (r *Runner) captureScreenshot(index int) (string, error) {
	if r.screenshotDir == "" {
		return "", fmt.Errorf("runner: no screenshot directory configured")
	}
	data, err := r.driver.Screenshot()
	if err != nil {
		return "", err
	}
	path := filepath.Join(r.screenshotDir, fmt.Sprintf("step-%d.png", index))
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Runner) readVisibleText() (string, error) {
	raw, err := r.driver.Evaluate(`() => document.body ? document.body.innerText : ''`)
	if err != nil {
		return "", err
	}
	text, _ := raw.(string)
	return truncate(text, maxVisibleTextChars), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
