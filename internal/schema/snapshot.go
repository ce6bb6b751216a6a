package schema

// MaxVisibleTextChars bounds PageSnapshot.VisibleText per spec.md §3.
const MaxVisibleTextChars = 8000

// InteractiveElement describes one element the LLM may target, derived
// by the Prescan's in-page extraction routine.
type InteractiveElement struct {
	Tag         string   `json:"tag"`
	Type        string   `json:"type,omitempty"`
	Text        string   `json:"text,omitempty"`
	TestID      string   `json:"testId,omitempty"`
	Name        string   `json:"name,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Href        string   `json:"href,omitempty"`
	Options     []string `json:"options,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
	ReadOnly    bool     `json:"readOnly,omitempty"`
	ClassList   []string `json:"classList,omitempty"`
	AriaBusy    bool     `json:"ariaBusy,omitempty"`
}

// PageSnapshot is the structured, truncated view of a page handed to an
// LLM for planning or evaluation.
type PageSnapshot struct {
	URL             string               `json:"url"`
	Title           string               `json:"title"`
	VisibleText     string               `json:"visibleText"`
	Elements        []InteractiveElement `json:"elements"`
	MetaDescription string               `json:"metaDescription,omitempty"`
}

// Truncate clamps VisibleText to MaxVisibleTextChars, matching the
// prescan/runner truncation rule in spec.md §4.3/§4.4.
func (p *PageSnapshot) Truncate() {
	if len(p.VisibleText) > MaxVisibleTextChars {
		p.VisibleText = p.VisibleText[:MaxVisibleTextChars]
	}
}
