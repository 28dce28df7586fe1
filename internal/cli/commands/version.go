package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlconvert version, Go runtime and the registered dialects.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlconvert v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dialects: %s\n", strings.Join(dialect.List(), ", "))
		},
	}
}
