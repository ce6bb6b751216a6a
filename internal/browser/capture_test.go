package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/promptqa/promptqa/internal/schema"
)

// fakeDriver implements Driver with event hooks the test can trigger
// directly; all other methods are unused by CaptureCollector.
type fakeDriver struct {
	consoleHandlers  []func(level, text string)
	responseHandlers []func(url string, status int, statusText, method string)
	errorHandlers    []func(message string)
}

func (f *fakeDriver) Goto(string, time.Duration) error                 { return nil }
func (f *fakeDriver) WaitForLoadState(string, time.Duration) error     { return nil }
func (f *fakeDriver) URL() string                                      { return "" }
func (f *fakeDriver) Title() (string, error)                           { return "", nil }
func (f *fakeDriver) Resolve(schema.SelectorHint) (Locator, error)     { return nil, nil }
func (f *fakeDriver) Screenshot() ([]byte, error)                      { return nil, nil }
func (f *fakeDriver) Evaluate(string) (interface{}, error)             { return nil, nil }
func (f *fakeDriver) AddCookies([]Cookie) error                        { return nil }
func (f *fakeDriver) Close() error                                     { return nil }
func (f *fakeDriver) OnConsole(fn func(level, text string))            { f.consoleHandlers = append(f.consoleHandlers, fn) }
func (f *fakeDriver) OnResponse(fn func(url string, status int, statusText, method string)) {
	f.responseHandlers = append(f.responseHandlers, fn)
}
func (f *fakeDriver) OnPageError(fn func(message string)) { f.errorHandlers = append(f.errorHandlers, fn) }

func TestCaptureCollectorBuffersAndFlushesAtomically(t *testing.T) {
	driver := &fakeDriver{}
	collector := NewCaptureCollector(driver)

	driver.consoleHandlers[0]("error", "boom")
	driver.consoleHandlers[0]("log", "ignored, not error/warn")
	driver.consoleHandlers[0]("warning", "careful")
	driver.responseHandlers[0]("http://x/ok", 200, "OK", "GET")
	driver.responseHandlers[0]("http://x/bad", 500, "Internal Server Error", "POST")
	driver.errorHandlers[0]("uncaught exception")

	frame := collector.Flush()

	assert.Len(t, frame.ConsoleEntries, 2)
	assert.Equal(t, schema.ConsoleError, frame.ConsoleEntries[0].Level)
	assert.Equal(t, schema.ConsoleWarn, frame.ConsoleEntries[1].Level)
	assert.Len(t, frame.NetworkFailures, 1)
	assert.Equal(t, 500, frame.NetworkFailures[0].Status)
	assert.Len(t, frame.PageErrors, 1)

	second := collector.Flush()
	assert.Empty(t, second.ConsoleEntries)
	assert.Empty(t, second.NetworkFailures)
	assert.Empty(t, second.PageErrors)
}

func TestCaptureCollectorCapsEntryCounts(t *testing.T) {
	driver := &fakeDriver{}
	collector := NewCaptureCollector(driver)

	for i := 0; i < 30; i++ {
		driver.consoleHandlers[0]("error", "spam")
	}
	frame := collector.Flush()
	assert.Len(t, frame.ConsoleEntries, 20)
}
