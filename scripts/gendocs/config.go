package main

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/hxx258456/sql-convert/internal/cli/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Flag        string
	Description string
}

// getConfigSchema describes every key of internal/cli/config.Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "source_dialect", Type: "string", Flag: "--from", Description: "Dialect the input SQL is written in"},
		{Name: "target_dialect", Type: "string", Flag: "--to", Description: "Dialect to render the output in"},
		{Name: "pretty", Type: "bool", Flag: "--pretty", Description: "Put each clause on its own line"},
		{Name: "workers", Type: "int", Flag: "--workers", Description: "Batch concurrency; 0 uses GOMAXPROCS"},
		{Name: "output", Type: "string", Flag: "--output", Description: "Output format: " + strings.Join(config.OutputModes, ", ")},
		{Name: "verbose", Type: "bool", Flag: "--verbose", Description: "Log at debug level"},
		{Name: "log_level", Type: "string", Flag: "--log-level", Description: "Log level: debug, info, warn, error"},
		{Name: "log_format", Type: "string", Flag: "--log-format", Description: "Log format: text or json"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	defaults := config.Defaults()
	fields := getConfigSchema()
	if err := checkSchema(fields, defaults); err != nil {
		return err
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "sqlconvert configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("sqlconvert reads %s from the working directory, or the file given with %s.",
		strings.Join(quoted(config.ConfigFileNames), " or "), InlineCode("--config")))

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables (%s)", InlineCode(config.EnvPrefix+"*")),
		fmt.Sprintf("A %s file in the working directory", InlineCode(config.DotEnvFile)),
		"The configuration file",
		"Built-in defaults",
	})

	w.Header(2, "Keys")
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{
			InlineCode(f.Name),
			f.Type,
			InlineCode(fmt.Sprint(defaults[f.Name])),
			InlineCode(config.EnvPrefix + strings.ToUpper(f.Name)),
			InlineCode(f.Flag),
			f.Description,
		})
	}
	w.Table([]string{"Key", "Type", "Default", "Environment", "Flag", "Description"}, rows)
	w.Paragraph("Unknown keys are rejected.")

	w.Header(2, "Example")
	w.CodeBlock("yaml", fmt.Sprintf(`source_dialect: %s
target_dialect: %s
pretty: %t
output: %s`, config.DefaultSourceDialect, config.DefaultTargetDialect, config.DefaultPretty, config.DefaultOutput))

	return writePage(outDir, "configuration.md", w)
}

// checkSchema fails when the documented keys drift from the loader defaults.
func checkSchema(fields []ConfigField, defaults map[string]any) error {
	documented := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, ok := defaults[f.Name]; !ok {
			return fmt.Errorf("documented key %q has no default", f.Name)
		}
		documented[f.Name] = true
	}
	var missing []string
	for key := range defaults {
		if !documented[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("undocumented config keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

func quoted(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = InlineCode(n)
	}
	return out
}
