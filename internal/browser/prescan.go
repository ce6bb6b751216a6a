package browser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/promptqa/promptqa/internal/schema"
)

const visibleTextTruncateChars = 4000

// extractionScript enumerates interactive elements (button, [role=button],
// a[href], input, select, textarea), de-duplicated by DOM node, deriving
// each element's accessible label from aria-label, an associated <label>,
// or an enclosing <label>.
const extractionScript = `() => {
	function labelFor(el) {
		const aria = el.getAttribute('aria-label');
		if (aria) return aria;
		if (el.id) {
			const forLabel = document.querySelector('label[for="' + el.id + '"]');
			if (forLabel) return forLabel.innerText.trim();
		}
		const enclosing = el.closest('label');
		if (enclosing) return enclosing.innerText.trim();
		return '';
	}

	const seen = new Set();
	const out = [];
	const nodes = document.querySelectorAll('button, [role=button], a[href], input, select, textarea');
	nodes.forEach((el) => {
		if (seen.has(el)) return;
		seen.add(el);

		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return;

		const tag = el.tagName.toLowerCase();
		const rec = {
			tag: tag,
			type: el.getAttribute('type') || '',
			text: (el.innerText || el.value || '').trim().slice(0, 200),
			testId: el.getAttribute('data-testid') || '',
			name: el.getAttribute('name') || '',
			placeholder: el.getAttribute('placeholder') || '',
			href: el.getAttribute('href') || '',
			disabled: !!el.disabled,
			readOnly: !!el.readOnly,
			ariaBusy: el.getAttribute('aria-busy') === 'true',
			classList: Array.from(el.classList || []),
		};
		if (tag === 'select') {
			rec.options = Array.from(el.options || []).map((o) => o.text);
		}
		if (!rec.text) rec.text = labelFor(el);
		out.push(rec);
	});
	return JSON.stringify(out);
}`

// Prescan navigates to url (domcontentloaded, navTimeout) and extracts a
// PageSnapshot: title, meta description, truncated visible text, and
// interactive elements.
func Prescan(d Driver, url string, navTimeout time.Duration) (*schema.PageSnapshot, error) {
	if err := d.Goto(url, navTimeout); err != nil {
		return nil, fmt.Errorf("browser: prescan: %w", err)
	}
	return extractSnapshot(d)
}

// PrescanCurrent extracts a PageSnapshot from the current page without
// navigating, used by the agent loop after each act.
func PrescanCurrent(d Driver) (*schema.PageSnapshot, error) {
	return extractSnapshot(d)
}

func extractSnapshot(d Driver) (*schema.PageSnapshot, error) {
	title, err := d.Title()
	if err != nil {
		return nil, fmt.Errorf("browser: read title: %w", err)
	}

	bodyText, err := d.Evaluate(`() => document.body ? document.body.innerText : ''`)
	if err != nil {
		return nil, fmt.Errorf("browser: read visible text: %w", err)
	}
	visibleText, _ := bodyText.(string)
	if len(visibleText) > visibleTextTruncateChars {
		visibleText = visibleText[:visibleTextTruncateChars]
	}

	metaResult, _ := d.Evaluate(`() => { const m = document.querySelector('meta[name="description"]'); return m ? m.content : ''; }`)
	metaDescription, _ := metaResult.(string)

	raw, err := d.Evaluate(extractionScript)
	if err != nil {
		return nil, fmt.Errorf("browser: extract elements: %w", err)
	}
	rawStr, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("browser: extraction script returned %T, expected string", raw)
	}

	var elements []schema.InteractiveElement
	if err := json.Unmarshal([]byte(rawStr), &elements); err != nil {
		return nil, fmt.Errorf("browser: parse extracted elements: %w", err)
	}

	snapshot := &schema.PageSnapshot{
		URL:             d.URL(),
		Title:           title,
		VisibleText:     visibleText,
		Elements:        elements,
		MetaDescription: metaDescription,
	}
	snapshot.Truncate()
	return snapshot, nil
}
