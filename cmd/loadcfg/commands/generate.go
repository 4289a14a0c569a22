package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/loadcfg/format"
	"github.com/thoreinstein/loadcfg/internal/errors"
	"github.com/thoreinstein/loadcfg/internal/logging"
	"github.com/thoreinstein/loadcfg/internal/paths"
	"github.com/thoreinstein/loadcfg/internal/schemafile"
)

var (
	generateSchema string
	generateFormat string
	generateOut    string
	generateStdout bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateSchema, "schema", "s", "",
		"path to the schema file (default: pick from the templates directory)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "",
		"output format: json, yaml, toml, ini (default from tool config)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "",
		"output file path (default: config.<ext> in the current directory)")
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false,
		"write the generated config to stdout instead of a file")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an example configuration from a schema",
	Long: `Generate an example configuration from a schema.

Each declared field receives the zero value for its type: "" for
strings, 0 for integers, 0.0 for floats, and false for booleans.
Nested sections are generated recursively, so the output always
conforms to the schema it was generated from.

When --schema is omitted, schemas found in the templates directory
are offered for interactive selection.

Examples:
  # Generate JSON next to you
  loadcfg generate --schema server.yaml

  # Pick the format and destination
  loadcfg generate --schema server.yaml --format toml -o conf/app.toml

  # Pipe into another tool
  loadcfg generate --schema server.yaml --stdout`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runGenerate(c, c.OutOrStdout())
	},
}

func runGenerate(c *cobra.Command, w io.Writer) error {
	schemaPath := generateSchema
	if schemaPath == "" {
		picked, err := pickSchema(c)
		if err != nil {
			return err
		}
		if picked == "" {
			// Aborted selection
			return nil
		}
		schemaPath = picked
	}

	tmpl, err := schemafile.ParseFile(schemaPath)
	if err != nil {
		return errors.NewUserError(err, "Check the schema file syntax")
	}

	f, err := resolveFormat(generateFormat, generateOut)
	if err != nil {
		return errors.NewUserError(err, "Valid formats: json, yaml, toml, ini")
	}

	gen, err := tmpl.Generate(f)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	if generateStdout {
		data, err := gen.Render()
		if err != nil {
			return errors.NewUserError(err, "")
		}
		_, err = w.Write(data)
		return err
	}

	out := generateOut
	if out == "" {
		out = "config." + f.Ext()
	}
	if err := gen.Save(out); err != nil {
		return errors.NewSystemError(err, "Check that the destination directory is writable")
	}

	loggerFrom(c).Info("generated configuration",
		slog.String("template", tmpl.Name()),
		slog.String("path", out))
	fmt.Fprintf(w, "Generated %s from template %q\n", out, tmpl.Name())
	return nil
}

// resolveFormat picks an output format from the --format flag, the output
// file extension, or the tool configuration, in that order.
func resolveFormat(flag, outPath string) (format.Format, error) {
	if flag != "" {
		f := format.Format(strings.ToLower(flag))
		if _, err := format.For(f); err != nil {
			return "", err
		}
		return f, nil
	}
	if outPath != "" {
		if f, err := format.FromExtension(outPath); err == nil {
			return f, nil
		}
	}
	if toolConfig != nil && toolConfig.DefaultFormat != "" {
		return format.Format(toolConfig.DefaultFormat), nil
	}
	return format.JSON, nil
}

// pickSchema lists schema files from the templates directory and asks the
// user to choose one. On a non-interactive stream it fails with a hint to
// pass --schema explicitly.
func pickSchema(c *cobra.Command) (string, error) {
	dir := templatesDir()
	entries, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil || len(entries) == 0 {
		return "", errors.NewUserError(errors.Newf("no schemas found in %s", dir),
			"Pass --schema or add schema files to the templates directory")
	}
	sort.Strings(entries)

	if !logging.IsTTY(os.Stdout) {
		return "", errors.NewUserError(errors.New("no schema specified"),
			"Pass --schema when running non-interactively")
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return strings.TrimSuffix(filepath.Base(entries[i]), ".yaml")
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			data, err := os.ReadFile(entries[i])
			if err != nil {
				return ""
			}
			return string(data)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			fmt.Fprintln(c.OutOrStdout(), "Aborted.")
			return "", nil
		}
		return "", errors.Wrap(err, "interactive schema selection failed")
	}

	return entries[idx], nil
}

func templatesDir() string {
	if toolConfig != nil && toolConfig.TemplatesDir != "" {
		return toolConfig.TemplatesDir
	}
	return paths.TemplatesDir()
}
