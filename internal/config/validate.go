package config

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/loadcfg/format"
)

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (supported: 1)", c.Version)
	}

	if c.DefaultFormat != "" {
		if _, err := format.For(format.Format(c.DefaultFormat)); err != nil {
			return fmt.Errorf("invalid default_format %q (valid: %s)",
				c.DefaultFormat, strings.Join(formatNames(), ", "))
		}
	}

	switch c.OutputFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid output_format %q (valid: text, json)", c.OutputFormat)
	}

	return nil
}

func formatNames() []string {
	formats := format.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
