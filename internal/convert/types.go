package convert

import (
	"encoding/json"

	"github.com/hxx258456/sql-convert/internal/introspect"
)

// Stage names reported in ErrorStage.
const (
	StageParse      = "parse"
	StageRender     = "render"
	StageIntrospect = "introspect"
)

// ConversionRequest asks for SourceSQL to be converted. A nil Pretty uses
// the service default.
type ConversionRequest struct {
	SourceSQL string `json:"source_sql" yaml:"source_sql"`
	Pretty    *bool  `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// ConversionResult is the outcome of one conversion. On failure TargetSQL
// is empty and ErrorMessage is set.
type ConversionResult struct {
	SourceSQL    string `json:"source_sql" yaml:"source_sql"`
	TargetSQL    string `json:"target_sql" yaml:"target_sql"`
	Success      bool   `json:"success" yaml:"success"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ErrorStage   string `json:"error_stage,omitempty" yaml:"error_stage,omitempty"`
}

// ParseRequest asks for the syntax tree of SourceSQL.
type ParseRequest struct {
	SourceSQL string `json:"source_sql" yaml:"source_sql"`
}

// ParseResult is the outcome of one parse. On failure ParsedStructure is
// empty.
type ParseResult struct {
	SourceSQL       string           `json:"source_sql" yaml:"source_sql"`
	ParsedStructure *ParsedStructure `json:"parsed_structure" yaml:"parsed_structure"`
	Success         bool             `json:"success" yaml:"success"`
	ErrorMessage    string           `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ErrorStage      string           `json:"error_stage,omitempty" yaml:"error_stage,omitempty"`
}

// ParsedStructure lists the serialized statements in input order. The
// zero value (a failed parse) marshals as {}; a successful parse of
// empty input marshals with an empty statements list.
type ParsedStructure struct {
	Statements     []*introspect.Tree `json:"statements" yaml:"statements"`
	StatementCount int                `json:"statement_count" yaml:"statement_count"`
}

type parsedStructureWire ParsedStructure

// IsZero reports whether p carries no parse output.
func (p ParsedStructure) IsZero() bool {
	return p.Statements == nil && p.StatementCount == 0
}

func (p ParsedStructure) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("{}"), nil
	}
	return json.Marshal(parsedStructureWire(p))
}

func (p ParsedStructure) MarshalYAML() (any, error) {
	if p.IsZero() {
		return map[string]any{}, nil
	}
	return parsedStructureWire(p), nil
}
