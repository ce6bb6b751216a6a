package runner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptqa/promptqa/internal/browser"
	"github.com/promptqa/promptqa/internal/schema"
)

type fakeLocator struct {
	clickErr error
	visible  bool
	text     string
}

func (l *fakeLocator) Click(time.Duration) error                { return l.clickErr }
func (l *fakeLocator) Fill(string, time.Duration) error          { return nil }
func (l *fakeLocator) SelectOption(string, time.Duration) error  { return nil }
func (l *fakeLocator) SetInputFiles(string, time.Duration) error { return nil }
func (l *fakeLocator) WaitFor(time.Duration) error {
	if !l.visible {
		return fmt.Errorf("never became visible")
	}
	return nil
}
func (l *fakeLocator) IsVisible() (bool, error)              { return l.visible, nil }
func (l *fakeLocator) InnerText() (string, error)             { return l.text, nil }
func (l *fakeLocator) PressKey(string, time.Duration) error   { return nil }

type fakeDriver struct {
	url          string
	visibleText  string
	screenshot   []byte
	locator      *fakeLocator
	gotoErr      error
	evaluateFunc func(string) (interface{}, error)
}

func (d *fakeDriver) Goto(url string, _ time.Duration) error {
	if d.gotoErr != nil {
		return d.gotoErr
	}
	d.url = url
	return nil
}
func (d *fakeDriver) WaitForLoadState(string, time.Duration) error { return nil }
func (d *fakeDriver) URL() string                                  { return d.url }
func (d *fakeDriver) Title() (string, error)                       { return "title", nil }
func (d *fakeDriver) Resolve(schema.SelectorHint) (browser.Locator, error) {
	return d.locator, nil
}
func (d *fakeDriver) Screenshot() ([]byte, error) { return d.screenshot, nil }
func (d *fakeDriver) Evaluate(script string) (interface{}, error) {
	if d.evaluateFunc != nil {
		return d.evaluateFunc(script)
	}
	return d.visibleText, nil
}
func (d *fakeDriver) AddCookies([]browser.Cookie) error                                  { return nil }
func (d *fakeDriver) OnConsole(func(level, text string))                                 {}
func (d *fakeDriver) OnResponse(func(url string, status int, statusText, method string)) {}
func (d *fakeDriver) OnPageError(func(message string))                                   {}
func (d *fakeDriver) Close() error                                                       { return nil }

func newTestRunner(t *testing.T, driver *fakeDriver) *Runner {
	dir := t.TempDir()
	collector := browser.NewCaptureCollector(driver)
	return New(driver, collector, dir)
}

func TestExecuteStepGotoSuccess(t *testing.T) {
	driver := &fakeDriver{visibleText: "hello world"}
	r := newTestRunner(t, driver)

	result := r.ExecuteStep(schema.Step{Type: schema.StepGoto, Description: "open", Value: "http://x"}, 0)

	assert.True(t, result.Success)
	assert.Equal(t, "http://x", result.URL)
	assert.Equal(t, "hello world", result.VisibleText)
	assert.NotEmpty(t, result.ScreenshotPath)
	assert.FileExists(t, result.ScreenshotPath)
}

func TestExecuteStepClickFailureMarksSuccessFalse(t *testing.T) {
	driver := &fakeDriver{locator: &fakeLocator{clickErr: fmt.Errorf("element not found")}}
	r := newTestRunner(t, driver)

	result := r.ExecuteStep(schema.Step{
		Type:        schema.StepClick,
		Description: "click",
		Selector:    &schema.SelectorHint{Strategy: schema.StrategyCSS, Value: "#go"},
	}, 1)

	assert.False(t, result.Success)
	require.NotEmpty(t, result.Capture.PageErrors)
	assert.Contains(t, result.Capture.PageErrors[0].Message, "element not found")
}

func TestExecuteStepExpectTextPassesOnSubstringMatch(t *testing.T) {
	driver := &fakeDriver{locator: &fakeLocator{visible: true, text: "Order confirmed"}}
	r := newTestRunner(t, driver)

	result := r.ExecuteStep(schema.Step{
		Type:        schema.StepExpectText,
		Description: "check",
		Value:       "confirmed",
	}, 2)

	assert.True(t, result.Success)
}

func TestExecuteStepExpectTextFailsWithoutMatch(t *testing.T) {
	driver := &fakeDriver{locator: &fakeLocator{visible: true, text: "something else"}}
	r := newTestRunner(t, driver)

	result := r.ExecuteStep(schema.Step{
		Type:        schema.StepExpectText,
		Description: "check",
		Value:       "confirmed",
	}, 2)

	assert.False(t, result.Success)
}

func TestExecuteStepWaitWithNumericValueSleeps(t *testing.T) {
	driver := &fakeDriver{}
	r := newTestRunner(t, driver)

	start := timeNow()
	result := r.ExecuteStep(schema.Step{Type: schema.StepWait, Description: "pause", Value: "10"}, 0)
	elapsed := timeNow().Sub(start)

	assert.True(t, result.Success)
	assert.GreaterOrEqual(t, elapsed.Milliseconds(), int64(5))
}

func timeNow() time.Time { return time.Now() }
