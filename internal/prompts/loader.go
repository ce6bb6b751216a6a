// Package prompts loads PromptQA's prompt templates and renders them
// by substituting `{{placeholder}}` tokens — plain string substitution,
// not Go's html/template or text/template machinery, since the
// templates are opaque prompt text with no control flow.
package prompts

import (
	"embed"
	"fmt"
	"regexp"
)

//go:embed *.tmpl
var files embed.FS

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Name identifies one of the six prompt templates PromptQA renders.
type Name string

const (
	Planner         Name = "planner"
	PlannerRepair   Name = "planner_repair"
	Evaluator       Name = "evaluator"
	EvaluatorRepair Name = "evaluator_repair"
	AgentStep       Name = "agent_step"
	AgentFinal      Name = "agent_final"
)

// Render loads the named template and substitutes each `{{key}}` with
// vars[key]. A placeholder with no matching key renders as an empty
// string rather than failing — templates tolerate optional fields
// (e.g. metaDescription) this way.
func Render(name Name, vars map[string]string) (string, error) {
	raw, err := files.ReadFile(string(name) + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("prompts: unknown template %q: %w", name, err)
	}
	return placeholderPattern.ReplaceAllStringFunc(string(raw), func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return vars[key]
	}), nil
}
