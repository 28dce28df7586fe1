package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNoInput is returned when no SQL was given and stdin is a terminal.
var errNoInput = errors.New("no SQL given: pass it as an argument, with -i <file>, or on stdin")

// readInput resolves the SQL text for a command.
// Priority: positional args > -i file ("-" means stdin) > piped stdin.
func readInput(cmd *cobra.Command, args []string, inputFile string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case inputFile == "-":
		return readAll(cmd.InOrStdin(), "stdin")
	case inputFile != "":
		content, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case !isTerminal(cmd.InOrStdin()):
		return readAll(cmd.InOrStdin(), "stdin")
	default:
		return "", errNoInput
	}
}

func readAll(r io.Reader, what string) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", what, err)
	}
	return string(content), nil
}

// isTerminal reports whether r is an interactive terminal. Readers that are
// not files (tests, pipes wrapped by cobra) count as piped input.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
