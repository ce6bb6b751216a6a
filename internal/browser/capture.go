package browser

import (
	"sync"

	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/schema"
)

// CaptureCollector owns the mutable state of one page's console,
// network, and page-error observations. It is attached once per page
// and exposes only Flush, which atomically returns the buffered frame
// and clears it — no caller ever sees a frame mutate underneath it.
type CaptureCollector struct {
	mu              sync.Mutex
	consoleEntries  []schema.ConsoleEntry
	networkFailures []schema.NetworkFailure
	pageErrors      []schema.PageError
}

// NewCaptureCollector attaches console/response/pageerror listeners to
// driver and returns the collector that buffers them.
func NewCaptureCollector(driver Driver) *CaptureCollector {
	c := &CaptureCollector{}

	driver.OnConsole(func(level, text string) {
		var mapped schema.ConsoleLevel
		switch level {
		case "error":
			mapped = schema.ConsoleError
		case "warning", "warn":
			mapped = schema.ConsoleWarn
		default:
			return
		}
		c.mu.Lock()
		if len(c.consoleEntries) < config.MaxConsoleErrors {
			c.consoleEntries = append(c.consoleEntries, schema.ConsoleEntry{Level: mapped, Text: text})
		}
		c.mu.Unlock()
	})

	driver.OnResponse(func(url string, status int, statusText, method string) {
		if status < 400 {
			return
		}
		c.mu.Lock()
		if len(c.networkFailures) < config.MaxNetworkErrors {
			c.networkFailures = append(c.networkFailures, schema.NetworkFailure{
				URL: url, Status: status, StatusText: statusText, Method: method,
			})
		}
		c.mu.Unlock()
	})

	driver.OnPageError(func(message string) {
		c.mu.Lock()
		c.pageErrors = append(c.pageErrors, schema.PageError{Message: message})
		c.mu.Unlock()
	})

	return c
}

// Flush returns the buffered frame and resets all buffers atomically.
func (c *CaptureCollector) Flush() schema.CaptureFrame {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := schema.CaptureFrame{
		ConsoleEntries:  c.consoleEntries,
		NetworkFailures: c.networkFailures,
		PageErrors:      c.pageErrors,
	}
	c.consoleEntries = nil
	c.networkFailures = nil
	c.pageErrors = nil
	return frame
}
