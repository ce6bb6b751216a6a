package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver is the sole Driver implementation: a single
// Chromium page inside a fresh (non-persistent) browser context.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// NewPlaywrightDriver launches Chromium and opens one page.
func NewPlaywrightDriver(headless bool) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("browser: start playwright: %w", err)
	}

	browserInst, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("browser: launch chromium: %w", err)
	}

	context, err := browserInst.NewContext()
	if err != nil {
		_ = browserInst.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("browser: new context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = browserInst.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("browser: new page: %w", err)
	}

	d := &PlaywrightDriver{pw: pw, browser: browserInst, context: context, page: page}
	return d, nil
}

func (d *PlaywrightDriver) Goto(url string, timeout time.Duration) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("browser: goto %s: %w", url, err)
	}
	return nil
}

func (d *PlaywrightDriver) WaitForLoadState(state string, timeout time.Duration) error {
	var ls *playwright.LoadState
	switch state {
	case "load":
		ls = playwright.LoadStateLoad
	case "networkidle":
		ls = playwright.LoadStateNetworkidle
	default:
		ls = playwright.LoadStateDomcontentloaded
	}
	return d.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   ls,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (d *PlaywrightDriver) URL() string { return d.page.URL() }

func (d *PlaywrightDriver) Title() (string, error) { return d.page.Title() }

func (d *PlaywrightDriver) Screenshot() ([]byte, error) {
	return d.page.Screenshot(playwright.PageScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
}

func (d *PlaywrightDriver) Evaluate(script string) (interface{}, error) {
	return d.page.Evaluate(script)
}

func (d *PlaywrightDriver) AddCookies(cookies []Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	pwCookies := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		pwCookies = append(pwCookies, playwright.OptionalCookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: playwright.String(c.Domain),
			Path:   playwright.String(c.Path),
		})
	}
	return d.context.AddCookies(pwCookies)
}

func (d *PlaywrightDriver) OnConsole(fn func(level, text string)) {
	d.page.On("console", func(msg playwright.ConsoleMessage) {
		fn(msg.Type(), msg.Text())
	})
}

func (d *PlaywrightDriver) OnResponse(fn func(url string, status int, statusText, method string)) {
	d.page.On("response", func(resp playwright.Response) {
		fn(resp.URL(), resp.Status(), resp.StatusText(), resp.Request().Method())
	})
}

func (d *PlaywrightDriver) OnPageError(fn func(message string)) {
	d.page.On("pageerror", func(err error) {
		fn(err.Error())
	})
}

func (d *PlaywrightDriver) Close() error {
	_ = d.context.Close()
	_ = d.browser.Close()
	return d.pw.Stop()
}
