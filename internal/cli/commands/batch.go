package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hxx258456/sql-convert/internal/cli/output"
	"github.com/hxx258456/sql-convert/internal/convert"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// maxCellWidth truncates long SQL in batch summary tables.
const maxCellWidth = 60

// NewBatchCommand creates the batch command and its convert/parse
// subcommands.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert or parse many SQL inputs at once",
		Long: `Process a list of requests read from a JSON or YAML file.

Each entry has a source_sql field; convert entries may also set pretty.
Results come back in input order, one per request, and a failing entry
never affects the others.`,
		Example: `  sqlconvert batch convert requests.json -o json
  sqlconvert batch parse requests.yaml --workers 4
  cat requests.json | sqlconvert batch convert -`,
	}

	cmd.AddCommand(newBatchConvertCommand())
	cmd.AddCommand(newBatchParseCommand())

	return cmd
}

func newBatchConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert every request in a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reqs []convert.ConversionRequest
			if err := readBatchFile(cmd, args[0], &reqs); err != nil {
				return err
			}

			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			cc.Logger.Debug("batch convert request", "items", len(reqs), "workers", cc.Service.Workers())

			results := cc.Service.ConvertBatch(reqs)
			if ok, err := cc.Renderer.Structured(results); ok {
				return err
			}

			rows := make([][]string, len(results))
			failed := 0
			for i, res := range results {
				detail := res.TargetSQL
				if !res.Success {
					failed++
					detail = res.ErrorMessage
				}
				rows[i] = []string{strconv.Itoa(i + 1), status(res.Success, res.ErrorStage), truncate(detail)}
			}
			renderBatchSummary(cc.Renderer, "Batch conversion", []string{"#", "Status", "Result"}, rows, failed)
			return nil
		},
	}
}

func newBatchParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse every request in a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reqs []convert.ParseRequest
			if err := readBatchFile(cmd, args[0], &reqs); err != nil {
				return err
			}

			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			cc.Logger.Debug("batch parse request", "items", len(reqs), "workers", cc.Service.Workers())

			results := cc.Service.ParseBatch(reqs)
			if ok, err := cc.Renderer.Structured(results); ok {
				return err
			}

			rows := make([][]string, len(results))
			failed := 0
			for i, res := range results {
				detail := ""
				if res.Success {
					detail = fmt.Sprintf("%d statement(s)", res.ParsedStructure.StatementCount)
				} else {
					failed++
					detail = res.ErrorMessage
				}
				rows[i] = []string{strconv.Itoa(i + 1), status(res.Success, res.ErrorStage), truncate(detail)}
			}
			renderBatchSummary(cc.Renderer, "Batch parse", []string{"#", "Status", "Result"}, rows, failed)
			return nil
		},
	}
}

// readBatchFile decodes a JSON or YAML request list from path ("-" for
// stdin). Unknown fields are rejected.
func readBatchFile(cmd *cobra.Command, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid batch file %s: %w", path, err)
	}
	return nil
}

func renderBatchSummary(r *output.Renderer, title string, headers []string, rows [][]string, failed int) {
	r.Header(1, title)
	r.Table(headers, rows)

	summary := fmt.Sprintf("%d item(s), %d failed", len(rows), failed)
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println()
		r.Println(output.FormatKeyValue("Summary", summary))
		return
	}
	if failed > 0 {
		r.Failure(summary)
		return
	}
	r.Success(summary)
}

func status(ok bool, stage string) string {
	if ok {
		return "ok"
	}
	return stage + " error"
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxCellWidth {
		return s
	}
	return string(runes[:maxCellWidth-3]) + "..."
}
