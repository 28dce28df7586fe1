package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hxx258456/sql-convert/internal/convert"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "sqlconvert> "
	replContPrompt = "       ...> "
	historyFile    = ".sqlconvert_history"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Convert SQL interactively",
		Long: `Start an interactive shell. Statements end with a semicolon and may
span several lines; each one is converted (or parsed, see .mode) as soon
as it is complete. Type .help for the available dot-commands.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

// replSession holds the state a REPL keeps between lines.
type replSession struct {
	cc     *CommandContext
	out    io.Writer
	errOut io.Writer
	source string
	target string
	parse  bool
}

func newREPLSession(cmd *cobra.Command) (*replSession, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, err
	}
	return &replSession{
		cc:     cc,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		source: cc.Cfg.SourceDialect,
		target: cc.Cfg.TargetDialect,
	}, nil
}

func runREPL(cmd *cobra.Command, _ []string) error {
	s, err := newREPLSession(cmd)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyPath(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(s.out, "sqlconvert REPL (%s -> %s)\n", s.source, s.target)
	_, _ = fmt.Fprintln(s.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := s.dotCommand(line); quit {
				break
			}
			continue
		}

		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString("\n")
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		s.eval(buf.String())
		buf.Reset()
		_, _ = fmt.Fprintln(s.out)
	}
	return nil
}

// eval converts or parses one complete input and prints the outcome.
func (s *replSession) eval(sql string) {
	s.cc.Logger.Debug("repl request", "bytes", len(sql), "parse", s.parse)

	var err error
	if s.parse {
		err = renderParse(s.cc.Renderer, s.cc.Service.ParseOne(convert.ParseRequest{SourceSQL: sql}))
	} else {
		err = renderConversion(s.cc, s.cc.Service.ConvertOne(convert.ConversionRequest{SourceSQL: sql}))
	}
	if err != nil && !errors.Is(err, ErrReported) {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

// dotCommand runs a dot-command and reports whether the REPL should exit.
func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".from", ".to":
		if arg == "" {
			_, _ = fmt.Fprintf(s.errOut, "Usage: %s <dialect> (available: %s)\n", command, strings.Join(dialect.List(), ", "))
			return false
		}
		source, target := s.source, s.target
		if command == ".from" {
			source = arg
		} else {
			target = arg
		}
		if err := s.switchDialects(source, target); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(s.out, "%s -> %s\n", s.source, s.target)

	case ".pretty":
		switch strings.ToLower(arg) {
		case "on", "true":
			s.cc.Cfg.Pretty = true
		case "off", "false":
			s.cc.Cfg.Pretty = false
		default:
			_, _ = fmt.Fprintln(s.errOut, "Usage: .pretty on|off")
			return false
		}
		if err := s.switchDialects(s.source, s.target); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	case ".mode":
		switch strings.ToLower(arg) {
		case "convert":
			s.parse = false
		case "parse":
			s.parse = true
		default:
			_, _ = fmt.Fprintln(s.errOut, "Usage: .mode convert|parse")
		}

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

// switchDialects rebuilds the service; the session is unchanged on error.
func (s *replSession) switchDialects(source, target string) error {
	svc, err := newService(s.cc.Cfg, source, target, s.cc.Logger)
	if err != nil {
		return err
	}
	s.cc.Service = svc
	s.source, s.target = canonicalName(source), canonicalName(target)
	return nil
}

func canonicalName(name string) string {
	if d, err := dialect.Lookup(name); err == nil {
		return d.Name
	}
	return name
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .from <dialect>    Set the source dialect
  .to <dialect>      Set the target dialect
  .pretty on|off     Toggle pretty-printing
  .mode convert|parse
                     Convert statements or show their syntax tree
  .clear             Clear the screen
  .quit / .exit      Exit the REPL

Tips:
  - Statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for dot-commands and dialect names
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	for _, name := range dialect.List() {
		names = append(names, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".from", names...),
		readline.PcItem(".to", names...),
		readline.PcItem(".pretty", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem(".mode", readline.PcItem("convert"), readline.PcItem("parse")),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// historyPath returns the history file in the user's home directory, or
// an empty path (no history) when there is none.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}
