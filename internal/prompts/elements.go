package prompts

import (
	"fmt"
	"strings"

	"github.com/promptqa/promptqa/internal/schema"
)

// FormatElements renders a snapshot's interactive elements as the
// pseudo-HTML tag list the planner and agent-step templates expect,
// including state flags for disabled/busy/readonly/loading elements.
func FormatElements(elements []schema.InteractiveElement) string {
	if len(elements) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, el := range elements {
		sb.WriteString("<")
		sb.WriteString(el.Tag)
		if el.Type != "" {
			fmt.Fprintf(&sb, " type=%q", el.Type)
		}
		if el.TestID != "" {
			fmt.Fprintf(&sb, " data-testid=%q", el.TestID)
		}
		if el.Name != "" {
			fmt.Fprintf(&sb, " name=%q", el.Name)
		}
		if el.Placeholder != "" {
			fmt.Fprintf(&sb, " placeholder=%q", el.Placeholder)
		}
		if el.Href != "" {
			fmt.Fprintf(&sb, " href=%q", el.Href)
		}
		for _, flag := range stateFlags(el) {
			sb.WriteString(" ")
			sb.WriteString(flag)
		}
		sb.WriteString(">")
		if el.Text != "" {
			sb.WriteString(el.Text)
		}
		sb.WriteString("</")
		sb.WriteString(el.Tag)
		sb.WriteString(">\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func stateFlags(el schema.InteractiveElement) []string {
	var flags []string
	if el.Disabled {
		flags = append(flags, "DISABLED")
	}
	if el.AriaBusy {
		flags = append(flags, "BUSY")
	}
	if el.ReadOnly {
		flags = append(flags, "READONLY")
	}
	for _, c := range el.ClassList {
		if strings.Contains(strings.ToLower(c), "load") {
			flags = append(flags, "LOADING")
			break
		}
	}
	return flags
}
