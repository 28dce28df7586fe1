package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hxx258456/sql-convert/internal/cli/output"
)

// generatedMarker tells readers not to edit the page by hand.
const generatedMarker = "<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->"

// MarkdownWriter accumulates a markdown page. Headers and tables go through
// the CLI renderer in markdown mode so pages match `-o markdown` output.
type MarkdownWriter struct {
	buf bytes.Buffer
	r   *output.Renderer
}

// NewMarkdownWriter creates an empty page.
func NewMarkdownWriter() *MarkdownWriter {
	w := &MarkdownWriter{}
	w.r = output.NewRendererWithTTY(&w.buf, io.Discard, false, output.ModeMarkdown)
	return w
}

// Frontmatter writes a YAML frontmatter block.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.buf, "---\ntitle: %q\ndescription: %q\n---\n\n", title, cleanDescription(description))
}

// GeneratedMarker writes the do-not-edit comment.
func (w *MarkdownWriter) GeneratedMarker() {
	w.buf.WriteString(generatedMarker + "\n\n")
}

func (w *MarkdownWriter) Header(level int, text string) {
	w.r.Header(level, text)
	w.buf.WriteString("\n")
}

func (w *MarkdownWriter) Paragraph(text string) {
	w.buf.WriteString(strings.TrimSpace(text) + "\n\n")
}

func (w *MarkdownWriter) CodeBlock(lang, code string) {
	w.buf.WriteString(output.FormatCodeBlock(lang, strings.TrimRight(code, "\n")) + "\n\n")
}

// Table writes a markdown table; empty tables are skipped.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	w.r.Table(headers, rows)
	w.buf.WriteString("\n")
}

func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		w.buf.WriteString("- " + item + "\n")
	}
	w.buf.WriteString("\n")
}

// Bytes returns the page with a single trailing newline.
func (w *MarkdownWriter) Bytes() []byte {
	return append(bytes.TrimRight(w.buf.Bytes(), "\n"), '\n')
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// cleanDescription collapses whitespace so text fits in a table cell.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
