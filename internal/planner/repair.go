package planner

import (
	"fmt"
	"regexp"
)

var quotedSubstring = regexp.MustCompile(`["']([^"']+)["']`)

// repairRawSteps applies the planner's pre-validation repair pass to a
// parsed-but-unvalidated step array: it fills in defaults and rewrites
// selector strategies the Step schema doesn't recognize into ones it
// does, so that a plausible-but-slightly-off LLM response still
// survives schema validation without a round trip back to the model.
func repairRawSteps(steps []interface{}) {
	for _, raw := range steps {
		step, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		RepairRawStep(step)
	}
}

// RepairRawStep applies the single-step half of the pre-validation
// repair pass. Exported so the agent loop's decide() parsing — which
// repairs one action at a time rather than a whole array — can reuse
// the same selector-strategy and expect_text-value rules.
func RepairRawStep(step map[string]interface{}) {
	stepType, _ := step["type"].(string)

	if desc, ok := step["description"].(string); !ok || desc == "" {
		step["description"] = fmt.Sprintf("%s step", stepType)
	}

	if sel, ok := step["selector"].(map[string]interface{}); ok {
		repairSelector(sel)
	}

	if stepType == "expect_text" {
		if value, ok := step["value"].(string); !ok || value == "" {
			step["value"] = synthesizeExpectTextValue(step)
		}
	}
}

// repairSelector rewrites unknown selector strategies into the four the
// Step schema validates: placeholder/name/id become css selectors,
// label becomes text, and anything else left over becomes a generic
// attribute selector built from the original strategy name.
func repairSelector(sel map[string]interface{}) {
	strategy, _ := sel["strategy"].(string)
	value, _ := sel["value"].(string)

	switch strategy {
	case "testid", "role", "text", "css":
		return
	case "placeholder":
		sel["strategy"] = "css"
		sel["value"] = fmt.Sprintf("input[placeholder='%s']", value)
	case "name":
		sel["strategy"] = "css"
		sel["value"] = fmt.Sprintf("[name='%s']", value)
	case "id":
		sel["strategy"] = "css"
		sel["value"] = "#" + value
	case "label":
		sel["strategy"] = "text"
	default:
		sel["strategy"] = "css"
		sel["value"] = fmt.Sprintf("[%s='%s']", strategy, value)
	}
}

// synthesizeExpectTextValue derives a missing expect_text value from a
// quoted substring in the step's description, falling back to a
// truncated copy of the description itself.
func synthesizeExpectTextValue(step map[string]interface{}) string {
	desc, _ := step["description"].(string)
	if m := quotedSubstring.FindStringSubmatch(desc); m != nil {
		return m[1]
	}
	if len(desc) > 50 {
		return desc[:50]
	}
	return desc
}
