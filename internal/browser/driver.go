// Package browser wraps playwright-go behind the narrow interface the
// rest of PromptQA depends on: navigation, selector-strategy locator
// resolution, input actions, screenshotting, DOM evaluation, and event
// subscription. No other package imports playwright-go directly.
package browser

import (
	"time"

	"github.com/promptqa/promptqa/internal/schema"
)

// Cookie is the pre-auth cookie PromptQA attaches to a session before
// any navigation happens, via --cookie or config auth.cookie.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// Locator is a resolved, lazily-evaluated reference to one element.
type Locator interface {
	Click(timeout time.Duration) error
	Fill(value string, timeout time.Duration) error
	SelectOption(value string, timeout time.Duration) error
	SetInputFiles(path string, timeout time.Duration) error
	WaitFor(timeout time.Duration) error
	IsVisible() (bool, error)
	InnerText() (string, error)
	PressKey(key string, timeout time.Duration) error
}

// Driver is the opaque browser session PromptQA's runner and prescan
// operate against.
type Driver interface {
	Goto(url string, timeout time.Duration) error
	WaitForLoadState(state string, timeout time.Duration) error
	URL() string
	Title() (string, error)
	Resolve(hint schema.SelectorHint) (Locator, error)
	Screenshot() ([]byte, error)
	Evaluate(script string) (interface{}, error)
	AddCookies(cookies []Cookie) error
	OnConsole(fn func(level, text string))
	OnResponse(fn func(url string, status int, statusText, method string))
	OnPageError(fn func(message string))
	Close() error
}
