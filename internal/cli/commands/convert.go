package commands

import (
	"fmt"

	"github.com/hxx258456/sql-convert/internal/cli/output"
	"github.com/hxx258456/sql-convert/internal/convert"
	"github.com/spf13/cobra"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	Input string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [SQL]",
		Short: "Convert SQL from the source dialect to the target dialect",
		Long: `Convert one or more SQL statements between dialects.

The input may hold several statements separated by semicolons; the
converted statements are joined by ";" and a newline. Output is
pretty-printed unless --pretty=false is given.`,
		Example: `  # MySQL to Oracle (the defaults)
  sqlconvert convert "SELECT * FROM users WHERE age > 18 LIMIT 10"

  # Oracle to PostgreSQL, compact output
  sqlconvert convert --from oracle --to postgres --pretty=false "SELECT NVL(a, 0) FROM t"

  # From a file or stdin, as JSON
  sqlconvert convert -i query.sql -o json
  cat query.sql | sqlconvert convert`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file (- for stdin)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	sql, err := readInput(cmd, args, opts.Input)
	if err != nil {
		return err
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cc.Logger.Debug("convert request", "bytes", len(sql), "pretty", cc.Cfg.Pretty)

	result := cc.Service.ConvertOne(convert.ConversionRequest{SourceSQL: sql})
	return renderConversion(cc, result)
}

func renderConversion(cc *CommandContext, result convert.ConversionResult) error {
	r := cc.Renderer
	if ok, err := r.Structured(result); ok {
		if err != nil {
			return err
		}
		if !result.Success {
			return ErrReported
		}
		return nil
	}

	if !result.Success {
		return fmt.Errorf("%s error: %s", result.ErrorStage, result.ErrorMessage)
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(2, "Conversion"))
		r.Println(output.FormatKeyValue("From", cc.Cfg.SourceDialect))
		r.Println(output.FormatKeyValue("To", cc.Cfg.TargetDialect))
		r.Println()
		r.Println(output.FormatCodeBlock("sql", result.TargetSQL))
		return nil
	}

	if result.TargetSQL != "" {
		r.Println(result.TargetSQL)
	}
	return nil
}
