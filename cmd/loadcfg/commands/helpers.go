package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/loadcfg/internal/logging"
	"github.com/thoreinstein/loadcfg/internal/report"
)

// loggerFrom returns the logger attached to the command's context.
func loggerFrom(c *cobra.Command) *slog.Logger {
	ctx := c.Context()
	if ctx == nil {
		return slog.Default()
	}
	return logging.FromContext(ctx)
}

// outputFormat resolves a report format from a flag value, falling back to
// the tool configuration and finally to text.
func outputFormat(flag string) report.Format {
	if flag != "" {
		return report.Format(flag)
	}
	if toolConfig != nil && toolConfig.OutputFormat != "" {
		return report.Format(toolConfig.OutputFormat)
	}
	return report.FormatText
}
