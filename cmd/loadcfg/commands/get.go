package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/loadcfg"
	"github.com/thoreinstein/loadcfg/internal/errors"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <config> <path>",
	Short: "Read a single value from a configuration file",
	Long: `Read a single value from a configuration file by dotted path.

The path descends through nested sections: "database.port" reads the
"port" key inside the "database" section. Scalars print as their
literal value; lists and sections print in a display form.

Examples:
  loadcfg get app.yaml database.port
  loadcfg get settings.ini server.host`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		return runGet(args[0], args[1], c.OutOrStdout())
	},
}

func runGet(configPath, keyPath string, w io.Writer) error {
	cfg, err := loadcfg.Load(configPath)
	if err != nil {
		return errors.NewUserError(err, "Check the configuration file path and syntax")
	}

	v, ok := cfg.Get(keyPath)
	if !ok {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "key %q", keyPath),
			"Use dotted paths to reach nested sections, e.g. database.port")
	}

	fmt.Fprintln(w, v.String())
	return nil
}
