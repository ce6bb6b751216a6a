package agentloop

import (
	"fmt"
	"strings"

	"github.com/promptqa/promptqa/internal/schema"
)

// observationTruncateChars bounds the Observation field of each
// ActionHistoryEntry appended during Act, per spec.md §4.8's "≤80-char
// observation truncation" — tighter than ActionHistoryEntry's own
// ~200-char schema-level size (schema.MaxObservationChars), which no
// code enforces; this is the only truncation applied. See DESIGN.md.
const observationTruncateChars = 80

// history accumulates ActionHistoryEntry records for the agent_step
// prompt and detects repeated or alternating actions, adapted from the
// teacher's StepMemory: an exact-repeat counter plus a length-2
// alternating-pattern counter, both keyed on action-type+url+selector
// rather than free-text action lines.
type history struct {
	entries []schema.ActionHistoryEntry

	lastKey     string
	repeatCount int

	recentKeys    []string
	patternCounts map[string]int
}

const (
	loopThreshold = 2
	patternLen    = 2
	maxRecentKeys = 10
)

func newHistory() *history {
	return &history{patternCounts: make(map[string]int)}
}

func actionKey(url string, step schema.Step) string {
	selector := ""
	if step.Selector != nil {
		selector = string(step.Selector.Strategy) + ":" + step.Selector.Value
	}
	return fmt.Sprintf("%s|%s|%s", step.Type, url, selector)
}

// shouldBlock reports whether step would repeat the immediately prior
// action loopThreshold times in a row, or would complete a two-action
// pattern already seen once, and a system-note explaining why.
func (h *history) shouldBlock(url string, step schema.Step) (bool, string) {
	key := actionKey(url, step)

	if key == h.lastKey && h.repeatCount >= loopThreshold {
		return true, fmt.Sprintf(
			"SYSTEM NOTE: the same action (%s) has already run %d times in a row. Choose a different action or declare the goal complete.",
			key, h.repeatCount,
		)
	}

	if len(h.recentKeys) >= patternLen-1 {
		start := len(h.recentKeys) - (patternLen - 1)
		seq := append(append([]string{}, h.recentKeys[start:]...), key)
		pattern := strings.Join(seq, "->")
		if h.patternCounts[pattern] >= 1 {
			return true, fmt.Sprintf(
				"SYSTEM NOTE: the action sequence (%s) has already occurred before. Try a different approach.",
				pattern,
			)
		}
	}

	return false, ""
}

// recordKey updates the repeat/pattern counters for step, independent
// of whether the action was actually executed or blocked.
func (h *history) recordKey(url string, step schema.Step) {
	key := actionKey(url, step)

	if key == h.lastKey {
		h.repeatCount++
	} else {
		h.lastKey = key
		h.repeatCount = 1
	}

	h.recentKeys = append(h.recentKeys, key)
	if len(h.recentKeys) > maxRecentKeys {
		h.recentKeys = h.recentKeys[len(h.recentKeys)-maxRecentKeys:]
	}
	if len(h.recentKeys) >= patternLen {
		start := len(h.recentKeys) - patternLen
		pattern := strings.Join(h.recentKeys[start:], "->")
		h.patternCounts[pattern]++
	}
}

// append adds an ActionHistoryEntry, truncating Observation to
// observationTruncateChars.
func (h *history) append(entry schema.ActionHistoryEntry) {
	if len(entry.Observation) > observationTruncateChars {
		entry.Observation = entry.Observation[:observationTruncateChars]
	}
	h.entries = append(h.entries, entry)
}

// format renders the accumulated entries as the plain-text block the
// agent_step/agent_final templates expect.
func (h *history) format() string {
	if len(h.entries) == 0 {
		return "(no actions taken yet)"
	}
	lines := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		lines = append(lines, fmt.Sprintf(
			"step=%d action=%s success=%t observation=%q",
			e.StepIndex, e.Action, e.Success, e.Observation,
		))
	}
	return strings.Join(lines, "\n")
}
