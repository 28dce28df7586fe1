// Package config provides configuration management for the sqlconvert CLI.
//
// Values are layered, lowest to highest precedence: built-in defaults,
// sqlconvert.yaml, a .env file, SQLCONVERT_* environment variables and
// explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	SourceDialect string `koanf:"source_dialect"`
	TargetDialect string `koanf:"target_dialect"`
	Pretty        bool   `koanf:"pretty"`
	Workers       int    `koanf:"workers"`
	OutputFormat  string `koanf:"output"`
	Verbose       bool   `koanf:"verbose"`
	LogLevel      string `koanf:"log_level"`
	LogFormat     string `koanf:"log_format"`
}

// Default configuration values.
const (
	DefaultSourceDialect = "mysql"
	DefaultTargetDialect = "oracle"
	DefaultPretty        = true
	DefaultWorkers       = 0 // GOMAXPROCS
	DefaultOutput        = "auto"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"

	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "SQLCONVERT_"
)

// ConfigFileNames are searched in the working directory, in order.
var ConfigFileNames = []string{"sqlconvert.yaml", "sqlconvert.yml"}

// Output modes accepted by the output key.
var OutputModes = []string{"auto", "text", "json", "yaml", "markdown"}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"source_dialect": DefaultSourceDialect,
		"target_dialect": DefaultTargetDialect,
		"pretty":         DefaultPretty,
		"workers":        DefaultWorkers,
		"output":         DefaultOutput,
		"verbose":        false,
		"log_level":      DefaultLogLevel,
		"log_format":     DefaultLogFormat,
	}
}
