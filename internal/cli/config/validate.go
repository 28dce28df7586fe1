package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/hxx258456/sql-convert/pkg/dialect"

	// Register the built-in dialects.
	_ "github.com/hxx258456/sql-convert/pkg/dialects"
)

// Validate checks dialect names against the registry and the enumerated
// settings against their allowed values. Dialect names are normalized to
// their canonical registry names.
func (c *Config) Validate() error {
	src, err := dialect.Lookup(c.SourceDialect)
	if err != nil {
		return fmt.Errorf("invalid source_dialect: %w", err)
	}
	c.SourceDialect = src.Name

	dst, err := dialect.Lookup(c.TargetDialect)
	if err != nil {
		return fmt.Errorf("invalid target_dialect: %w", err)
	}
	c.TargetDialect = dst.Name

	c.OutputFormat = strings.ToLower(c.OutputFormat)
	if !slices.Contains(OutputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output %q (available: %s)", c.OutputFormat, strings.Join(OutputModes, ", "))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q (available: text, json)", c.LogFormat)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q (available: debug, info, warn, error)", s)
	}
	return level, nil
}
