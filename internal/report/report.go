// Package report formats validation results for the CLI, as colorized
// human-readable text or as machine-readable JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/thoreinstein/loadcfg/template"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// jsonReport is the JSON shape of a validation result.
type jsonReport struct {
	Valid      bool                `json:"valid"`
	Template   string              `json:"template,omitempty"`
	Mismatches []template.Mismatch `json:"mismatches,omitempty"`
}

// Report writes the outcome of a validation run. A nil verr means the
// configuration conformed to its template.
func (r *Reporter) Report(verr *template.ConfigValidationError) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(verr)
	default:
		return r.reportText(verr)
	}
}

func (r *Reporter) reportJSON(verr *template.ConfigValidationError) error {
	rep := jsonReport{Valid: verr == nil}
	if verr != nil {
		rep.Template = verr.Template
		rep.Mismatches = verr.Mismatches
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(rep), "encoding JSON report")
}

func (r *Reporter) reportText(verr *template.ConfigValidationError) error {
	if verr == nil {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed"))
		return nil
	}

	fmt.Fprintf(r.out, "Validation failed: %s against template %q\n\n",
		color.RedString("%d mismatch(es)", len(verr.Mismatches)), verr.Template)

	pathColor := color.New(color.FgRed).SprintFunc()
	detailColor := color.New(color.FgHiBlack).SprintFunc()
	for _, m := range verr.Mismatches {
		if m.Found == template.FoundMissing {
			fmt.Fprintf(r.out, "  • %s: %s %s\n",
				pathColor(m.Path), "missing", detailColor("(expected "+m.Expected+")"))
			continue
		}
		fmt.Fprintf(r.out, "  • %s: expected %s, found %s\n",
			pathColor(m.Path), m.Expected, m.Found)
	}
	fmt.Fprintln(r.out)

	return nil
}
