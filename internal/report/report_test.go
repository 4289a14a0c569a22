package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/loadcfg/template"
)

func TestReportTextPassed(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText)

	require.NoError(t, r.Report(nil))
	assert.Contains(t, buf.String(), "Validation passed")
}

func TestReportTextMismatches(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText)

	verr := &template.ConfigValidationError{
		Template: "server",
		Mismatches: []template.Mismatch{
			{Path: "port", Expected: "integer", Found: "string"},
			{Path: "host", Expected: "string", Found: template.FoundMissing},
		},
	}

	require.NoError(t, r.Report(verr))
	out := buf.String()
	assert.Contains(t, out, "2 mismatch(es)")
	assert.Contains(t, out, `template "server"`)
	assert.Contains(t, out, "port")
	assert.Contains(t, out, "expected integer, found string")
	assert.Contains(t, out, "host")
	assert.Contains(t, out, "missing")
}

func TestReportJSONPassed(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON)

	require.NoError(t, r.Report(nil))

	var rep struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.True(t, rep.Valid)
}

func TestReportJSONMismatches(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON)

	verr := &template.ConfigValidationError{
		Template: "server",
		Mismatches: []template.Mismatch{
			{Path: "port", Expected: "integer", Found: "string"},
		},
	}

	require.NoError(t, r.Report(verr))

	var rep struct {
		Valid      bool   `json:"valid"`
		Template   string `json:"template"`
		Mismatches []struct {
			Path     string `json:"path"`
			Expected string `json:"expected"`
			Found    string `json:"found"`
		} `json:"mismatches"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.False(t, rep.Valid)
	assert.Equal(t, "server", rep.Template)
	require.Len(t, rep.Mismatches, 1)
	assert.Equal(t, "port", rep.Mismatches[0].Path)
	assert.Equal(t, "integer", rep.Mismatches[0].Expected)
	assert.Equal(t, "string", rep.Mismatches[0].Found)
}
