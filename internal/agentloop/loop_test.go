package agentloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptqa/promptqa/internal/browser"
	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/schema"
)

type fakeLocator struct {
	visible bool
	text    string
}

func (l *fakeLocator) Click(time.Duration) error                 { return nil }
func (l *fakeLocator) Fill(string, time.Duration) error          { return nil }
func (l *fakeLocator) SelectOption(string, time.Duration) error  { return nil }
func (l *fakeLocator) SetInputFiles(string, time.Duration) error { return nil }
func (l *fakeLocator) WaitFor(time.Duration) error                { return nil }
func (l *fakeLocator) IsVisible() (bool, error)                   { return l.visible, nil }
func (l *fakeLocator) InnerText() (string, error)                 { return l.text, nil }
func (l *fakeLocator) PressKey(string, time.Duration) error       { return nil }

type fakeDriver struct {
	url         string
	title       string
	visibleText string
	screenshot  []byte
	locator     *fakeLocator
}

func (d *fakeDriver) Goto(url string, _ time.Duration) error {
	d.url = url
	return nil
}
func (d *fakeDriver) WaitForLoadState(string, time.Duration) error { return nil }
func (d *fakeDriver) URL() string                                  { return d.url }
func (d *fakeDriver) Title() (string, error)                       { return d.title, nil }
func (d *fakeDriver) Resolve(schema.SelectorHint) (browser.Locator, error) {
	return d.locator, nil
}
func (d *fakeDriver) Screenshot() ([]byte, error) { return d.screenshot, nil }
func (d *fakeDriver) Evaluate(script string) (interface{}, error) {
	switch {
	case contains(script, "document.body"):
		return d.visibleText, nil
	case contains(script, "meta[name="):
		return "", nil
	default:
		return "[]", nil
	}
}
func (d *fakeDriver) AddCookies([]browser.Cookie) error                                { return nil }
func (d *fakeDriver) OnConsole(func(level, text string))                               {}
func (d *fakeDriver) OnResponse(func(url string, status int, statusText, method string)) {}
func (d *fakeDriver) OnPageError(func(message string))                                 {}
func (d *fakeDriver) Close() error                                                      { return nil }

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

const clickCheckoutAction = `{"done": false, "action": {"type": "click", "description": "click checkout", "selector": {"strategy": "css", "value": "#checkout"}}, "destructive": false}`

func TestRunDeclaresDoneImmediatelyUsesFinalEvaluationAsVerdict(t *testing.T) {
	driver := &fakeDriver{title: "Example", visibleText: "nothing to do"}
	client := llmclient.NewMockClient(
		`{"done": true, "summary": "goal already satisfied"}`,
		`{"result": "PASS", "confidence": 0.95, "reason": "already on target page"}`,
	)

	out, err := Run(context.Background(), Options{
		Driver:  driver,
		Client:  client,
		URL:     "http://example.com",
		Prompt:  "land on the example page",
		Timeout: 30 * time.Second,
	})

	require.NoError(t, err)
	assert.Empty(t, out.Steps)
	assert.Equal(t, schema.ResultPass, out.Summary)
}

func TestRunExecutesOneActionThenDoneOverwritesLastStepEvaluation(t *testing.T) {
	driver := &fakeDriver{
		title:       "Example",
		visibleText: "checkout complete",
		locator:     &fakeLocator{visible: true, text: "checkout complete"},
	}
	client := llmclient.NewMockClient(
		clickCheckoutAction,
		`{"done": true, "summary": "checkout finished"}`,
		`{"result": "PASS", "confidence": 0.9, "reason": "order confirmed"}`,
	)

	out, err := Run(context.Background(), Options{
		Driver:  driver,
		Client:  client,
		URL:     "http://example.com",
		Prompt:  "complete checkout",
		Timeout: 30 * time.Second,
	})

	require.NoError(t, err)
	require.Len(t, out.Steps, 1)
	require.NotNil(t, out.Steps[0].Evaluation)
	assert.Equal(t, schema.ResultPass, out.Steps[0].Evaluation.Result)
	assert.Equal(t, schema.ResultPass, out.Summary)
}

func TestRunLoopGuardBlocksRepeatedAction(t *testing.T) {
	driver := &fakeDriver{
		title:       "Example",
		visibleText: "still here",
		locator:     &fakeLocator{visible: true, text: "still here"},
	}
	client := llmclient.NewMockClient(clickCheckoutAction)

	out, err := Run(context.Background(), Options{
		Driver:  driver,
		Client:  client,
		URL:     "http://example.com",
		Prompt:  "click checkout repeatedly",
		Timeout: 30 * time.Second,
	})

	require.NoError(t, err)
	// the identical action executes twice (repeatCount reaches the
	// threshold on the second), then every further attempt is blocked
	// for the remaining iterations.
	assert.Len(t, out.Steps, 2)
}

func TestRunSkipsDestructiveActionWithoutExecuting(t *testing.T) {
	driver := &fakeDriver{title: "Example", visibleText: "cart page"}
	destructiveAction := `{"done": false, "action": {"type": "click", "description": "delete account", "selector": {"strategy": "css", "value": "#delete-account"}}, "destructive": true}`
	client := llmclient.NewMockClient(
		destructiveAction,
		`{"done": true, "summary": "stopped before destructive action"}`,
		`{"result": "UNCERTAIN", "confidence": 0.5, "reason": "could not proceed safely"}`,
	)

	out, err := Run(context.Background(), Options{
		Driver:  driver,
		Client:  client,
		URL:     "http://example.com",
		Prompt:  "delete the account",
		Timeout: 30 * time.Second,
	})

	require.NoError(t, err)
	assert.Empty(t, out.Steps)
	assert.Equal(t, schema.ResultUncertain, out.Summary)
}
