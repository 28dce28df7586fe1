package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hxx258456/sql-convert/internal/cli/commands"
)

// generateDialectDocs generates the dialect reference page from the
// dialect registry.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	infos := commands.ListDialects()
	if len(infos) == 0 {
		return fmt.Errorf("no dialects registered")
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects supported by sqlconvert")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph(fmt.Sprintf("Any dialect below can be passed to %s and %s by name or alias.",
		InlineCode("--from"), InlineCode("--to")))

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		aliases := make([]string, len(info.Aliases))
		for i, a := range info.Aliases {
			aliases[i] = InlineCode(a)
		}
		rows = append(rows, []string{
			InlineCode(info.Name),
			info.Title,
			strings.Join(aliases, ", "),
			InlineCode(info.Quote),
			InlineCode(info.Placeholder),
			InlineCode(info.Limit),
		})
	}
	w.Table([]string{"Name", "Title", "Aliases", "Identifier quote", "Placeholder", "Row limit"}, rows)

	return writePage(outDir, "dialects.md", w)
}
