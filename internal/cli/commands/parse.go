package commands

import (
	"encoding/json"
	"fmt"

	"github.com/hxx258456/sql-convert/internal/cli/output"
	"github.com/hxx258456/sql-convert/internal/convert"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Input string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [SQL]",
		Short: "Show the syntax tree of SQL in the source dialect",
		Long: `Parse SQL with the source dialect and print one tree per statement.

Every node carries its type and its SQL text in the target dialect.
Depending on its kind a node also carries a key and value, argument
nodes or a single expression, plus alias, name, table and column
descriptors when present.`,
		Example: `  sqlconvert parse "SELECT id FROM users"
  sqlconvert parse --from oracle -o yaml "SELECT NVL(a, 0) FROM DUAL"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file (- for stdin)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	sql, err := readInput(cmd, args, opts.Input)
	if err != nil {
		return err
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cc.Logger.Debug("parse request", "bytes", len(sql))

	result := cc.Service.ParseOne(convert.ParseRequest{SourceSQL: sql})
	return renderParse(cc.Renderer, result)
}

func renderParse(r *output.Renderer, result convert.ParseResult) error {
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

	tree, err := json.MarshalIndent(result.ParsedStructure, "", "  ")
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(2, "Syntax tree"))
		r.Println(output.FormatKeyValue("Statements", fmt.Sprint(result.ParsedStructure.StatementCount)))
		r.Println()
		r.Println(output.FormatCodeBlock("json", string(tree)))
		return nil
	}

	r.Muted(fmt.Sprintf("%d statement(s)", result.ParsedStructure.StatementCount))
	r.Println(string(tree))
	return nil
}
