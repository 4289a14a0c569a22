package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/loadcfg"
	"github.com/thoreinstein/loadcfg/internal/errors"
	"github.com/thoreinstein/loadcfg/internal/report"
	"github.com/thoreinstein/loadcfg/internal/schemafile"
	"github.com/thoreinstein/loadcfg/template"
)

var (
	validateSchema string
	validateOutput string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "",
		"path to the schema file declaring the expected fields (required)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "",
		"output format: text, json (default from tool config)")
	_ = validateCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <config>",
	Short: "Validate a configuration file against a schema",
	Long: `Validate a configuration file against a schema.

The schema is a YAML mapping of field names to type names (string,
integer, float, boolean), with nested mappings for nested sections.
All mismatches are reported at once, each with the dotted path to the
offending field.

Exit codes:
  0 - configuration conforms to the schema
  1 - validation mismatches or invalid input
  2 - system error (unreadable file, etc.)

Examples:
  # Validate against a schema
  loadcfg validate app.yaml --schema server.yaml

  # Machine-readable output for CI
  loadcfg validate app.yaml --schema server.yaml --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runValidate(c, args[0], c.OutOrStdout())
	},
}

func runValidate(c *cobra.Command, configPath string, w io.Writer) error {
	tmpl, err := schemafile.ParseFile(validateSchema)
	if err != nil {
		return errors.NewUserError(err, "Check the schema file syntax")
	}

	cfg, err := loadcfg.Load(configPath)
	if err != nil {
		return errors.NewUserError(err, "Check the configuration file path and syntax")
	}

	logger := loggerFrom(c)
	logger.Debug("validating configuration",
		slog.String("config", configPath),
		slog.String("template", tmpl.Name()))

	reporter := report.NewReporter(w, outputFormat(validateOutput))

	err = cfg.Validate(tmpl)
	if err == nil {
		return reporter.Report(nil)
	}

	var verr *template.ConfigValidationError
	if !errors.As(err, &verr) {
		return errors.NewSystemError(err, "")
	}
	if rerr := reporter.Report(verr); rerr != nil {
		return errors.NewSystemError(rerr, "")
	}
	return errors.NewExitError(errValidationFailed, errors.ExitUser)
}

var errValidationFailed = errors.New("validation failed")
