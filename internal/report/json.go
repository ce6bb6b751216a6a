package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/promptqa/promptqa/internal/schema"
)

// GenerateJSON builds the summary.json contract for a finished run.
func GenerateJSON(run *schema.RunSummary, exitCode int) ([]byte, error) {
	doc := BuildDocument(run, exitCode)
	return SerializeJSON(doc)
}

// SerializeJSON marshals v through encoding/json and re-emits it with
// every object's keys sorted lexicographically and two-space
// indentation, so the byte-level output of summary.json is
// reproducible across runs regardless of struct field order, per
// spec.md §4.12.
func SerializeJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("report: marshal: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("report: unmarshal for re-encode: %w", err)
	}

	var buf bytes.Buffer
	if err := encodeSorted(&buf, generic, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeSorted(buf *bytes.Buffer, v interface{}, indent string) error {
	switch val := v.(type) {
	case map[string]interface{}:
		return encodeObject(buf, val, indent)
	case []interface{}:
		return encodeArray(buf, val, indent)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("report: marshal scalar: %w", err)
		}
		buf.Write(encoded)
		return nil
	}
}

func encodeObject(buf *bytes.Buffer, obj map[string]interface{}, indent string) error {
	if len(obj) == 0 {
		buf.WriteString("{}")
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	childIndent := indent + "  "
	buf.WriteString("{\n")
	for i, k := range keys {
		buf.WriteString(childIndent)
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return fmt.Errorf("report: marshal key: %w", err)
		}
		buf.Write(keyJSON)
		buf.WriteString(": ")
		if err := encodeSorted(buf, obj[k], childIndent); err != nil {
			return err
		}
		if i < len(keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString(indent + "}")
	return nil
}

func encodeArray(buf *bytes.Buffer, arr []interface{}, indent string) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}

	childIndent := indent + "  "
	buf.WriteString("[\n")
	for i, item := range arr {
		buf.WriteString(childIndent)
		if err := encodeSorted(buf, item, childIndent); err != nil {
			return err
		}
		if i < len(arr)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString(indent + "]")
	return nil
}
