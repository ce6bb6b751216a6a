package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/promptqa/promptqa/internal/schema"
)

// Resolve maps a SelectorHint to a lazy Locator. There is no automatic
// fallback between strategies — a hint that resolves to nothing surfaces
// later as an action-time timeout, classified by the runner as
// element_not_found.
func (d *PlaywrightDriver) Resolve(hint schema.SelectorHint) (Locator, error) {
	var loc playwright.Locator

	switch hint.Strategy {
	case schema.StrategyTestID:
		loc = d.page.GetByTestId(hint.Value)
	case schema.StrategyRole:
		if hint.Role == "" {
			return nil, fmt.Errorf("browser: selector strategy=role requires role (hint=%+v)", hint)
		}
		opts := playwright.PageGetByRoleOptions{}
		if hint.Name != "" {
			opts.Name = hint.Name
		}
		loc = d.page.GetByRole(playwright.AriaRole(hint.Role), opts)
	case schema.StrategyText:
		loc = d.page.GetByText(hint.Value, playwright.PageGetByTextOptions{Exact: playwright.Bool(true)})
	case schema.StrategyCSS:
		loc = d.page.Locator(hint.Value)
	default:
		return nil, fmt.Errorf("browser: unknown selector strategy %q", hint.Strategy)
	}

	return &playwrightLocator{loc: loc}, nil
}

type playwrightLocator struct {
	loc playwright.Locator
}

func (l *playwrightLocator) Click(timeout time.Duration) error {
	return l.loc.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(float64(timeout.Milliseconds()))})
}

func (l *playwrightLocator) Fill(value string, timeout time.Duration) error {
	return l.loc.Fill(value, playwright.LocatorFillOptions{Timeout: playwright.Float(float64(timeout.Milliseconds()))})
}

func (l *playwrightLocator) SelectOption(value string, timeout time.Duration) error {
	_, err := l.loc.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}}, playwright.LocatorSelectOptionOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	return err
}

func (l *playwrightLocator) SetInputFiles(path string, timeout time.Duration) error {
	return l.loc.SetInputFiles(path, playwright.LocatorSetInputFilesOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (l *playwrightLocator) WaitFor(timeout time.Duration) error {
	return l.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (l *playwrightLocator) IsVisible() (bool, error) {
	return l.loc.IsVisible()
}

func (l *playwrightLocator) InnerText() (string, error) {
	return l.loc.InnerText()
}

func (l *playwrightLocator) PressKey(key string, timeout time.Duration) error {
	return l.loc.Press(key, playwright.LocatorPressOptions{Timeout: playwright.Float(float64(timeout.Milliseconds()))})
}
