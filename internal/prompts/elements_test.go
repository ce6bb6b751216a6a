package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptqa/promptqa/internal/schema"
)

func TestFormatElementsIncludesStateFlags(t *testing.T) {
	out := FormatElements([]schema.InteractiveElement{
		{Tag: "button", Text: "Submit", Disabled: true},
		{Tag: "input", Type: "text", Name: "email", ClassList: []string{"spinner-loading"}},
	})

	assert.Contains(t, out, "<button")
	assert.Contains(t, out, "DISABLED")
	assert.Contains(t, out, "Submit</button>")
	assert.Contains(t, out, `name="email"`)
	assert.Contains(t, out, "LOADING")
}

func TestFormatElementsEmpty(t *testing.T) {
	assert.Equal(t, "(none)", FormatElements(nil))
}
