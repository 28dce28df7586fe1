package commands

import (
	"errors"
	"log/slog"

	"github.com/hxx258456/sql-convert/internal/cli/config"
	"github.com/hxx258456/sql-convert/internal/cli/output"
	"github.com/hxx258456/sql-convert/internal/convert"
	"github.com/hxx258456/sql-convert/pkg/transpile"
	"github.com/spf13/cobra"
)

// ErrReported is returned by commands that already wrote a failure to the
// output; callers should exit non-zero without printing it again.
var ErrReported = errors.New("failure already reported")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Service  *convert.Service
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a conversion service for
// the configured dialect pair.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutService(cmd)

	svc, err := newService(cc.Cfg, cc.Cfg.SourceDialect, cc.Cfg.TargetDialect, cc.Logger)
	if err != nil {
		return nil, err
	}
	cc.Service = svc
	return cc, nil
}

// NewCommandContextWithoutService creates a CommandContext without a
// conversion service. Useful for commands that only print metadata.
func NewCommandContextWithoutService(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

func newService(cfg *config.Config, source, target string, logger *slog.Logger) (*convert.Service, error) {
	eng, err := transpile.New(source, target)
	if err != nil {
		return nil, err
	}
	pretty := cfg.Pretty
	return convert.New(convert.Config{
		Engine:  eng,
		Pretty:  &pretty,
		Workers: cfg.Workers,
		Logger:  logger.With("source", eng.Source.Name, "target", eng.Target.Name),
	})
}
