package commands

import (
	"strings"

	"github.com/hxx258456/sql-convert/pkg/core"
	"github.com/hxx258456/sql-convert/pkg/dialect"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Title       string   `json:"title" yaml:"title"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Quote       string   `json:"quote" yaml:"quote"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
	Limit       string   `json:"limit" yaml:"limit"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects",
		Long: `List every dialect that can be used with --from and --to, with its
aliases, identifier quoting, placeholder and row-limit styles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutService(cmd)
			infos := ListDialects()

			if ok, err := cc.Renderer.Structured(infos); ok {
				return err
			}

			rows := make([][]string, len(infos))
			for i, info := range infos {
				rows[i] = []string{info.Name, info.Title, strings.Join(info.Aliases, ", "),
					info.Quote, info.Placeholder, info.Limit}
			}
			cc.Renderer.Header(1, "Dialects")
			cc.Renderer.Table([]string{"Name", "Title", "Aliases", "Quote", "Placeholder", "Limit"}, rows)
			return nil
		},
	}
}

// ListDialects describes every registered dialect, sorted by name.
func ListDialects() []DialectInfo {
	title := cases.Title(language.English)
	names := dialect.List()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, DialectInfo{
			Name:        name,
			Title:       displayName(title, name),
			Aliases:     dialect.AliasesOf(name),
			Quote:       d.Identifiers.Quote,
			Placeholder: placeholderExample(d.Placeholder),
			Limit:       limitExample(d.Limit),
		})
	}
	return infos
}

// displayName keeps well-known acronyms upper case.
func displayName(title cases.Caser, name string) string {
	switch name {
	case "ansi":
		return "ANSI"
	case "mysql":
		return "MySQL"
	case "postgres":
		return "PostgreSQL"
	case "duckdb":
		return "DuckDB"
	}
	return title.String(name)
}

func placeholderExample(style core.PlaceholderStyle) string {
	switch style {
	case core.PlaceholderDollar:
		return "$1"
	case core.PlaceholderColon:
		return ":1"
	default:
		return "?"
	}
}

func limitExample(style core.LimitStyle) string {
	if style == core.LimitFetchFirst {
		return "FETCH FIRST n ROWS ONLY"
	}
	return "LIMIT n"
}
