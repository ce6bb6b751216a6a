package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBugReportValidate(t *testing.T) {
	require.NoError(t, BugReport{Description: "checkout button no-ops", Severity: SeverityMajor}.Validate())

	err := BugReport{Severity: SeverityMinor}.Validate()
	assert.ErrorContains(t, err, "description must not be empty")

	err = BugReport{Description: "x", Severity: "catastrophic"}.Validate()
	assert.ErrorContains(t, err, "unknown severity")
}
