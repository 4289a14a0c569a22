package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/loadcfg"
	"github.com/thoreinstein/loadcfg/format"
	"github.com/thoreinstein/loadcfg/internal/errors"
	"github.com/thoreinstein/loadcfg/pkg/fileutil"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a configuration file between formats",
	Long: `Convert a configuration file between formats.

Both formats are detected from the file extensions. The input is read
into a value tree and written back out in the target format, so key
order and value types survive wherever the target format can express
them. Converting to INI coerces scalars to strings and rejects lists.

Examples:
  loadcfg convert app.json app.toml
  loadcfg convert settings.ini settings.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		return runConvert(c, args[0], args[1], c.OutOrStdout())
	},
}

func runConvert(c *cobra.Command, inPath, outPath string, w io.Writer) error {
	outFormat, err := format.FromExtension(outPath)
	if err != nil {
		return errors.NewUserError(err, "Use a .json, .yaml, .toml, or .ini output path")
	}

	cfg, err := loadcfg.Load(inPath)
	if err != nil {
		return errors.NewUserError(err, "Check the input file path and syntax")
	}

	adapter, err := format.For(outFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	data, err := adapter.Serialize(cfg.Tree())
	if err != nil {
		return errors.NewUserError(err,
			fmt.Sprintf("The input contains values the %s format cannot represent", outFormat))
	}

	if err := fileutil.AtomicWriteFile(outPath, data, 0o600); err != nil {
		return errors.NewSystemError(err, "Check that the destination directory is writable")
	}

	loggerFrom(c).Info("converted configuration",
		slog.String("from", string(cfg.Format())),
		slog.String("to", string(outFormat)),
		slog.String("path", outPath))
	fmt.Fprintf(w, "Converted %s (%s) to %s (%s)\n", inPath, cfg.Format(), outPath, outFormat)
	return nil
}
