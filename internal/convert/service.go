// Package convert runs SQL conversion and parse requests against a
// dialect engine, one at a time or in ordered batches.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/hxx258456/sql-convert/internal/introspect"
)

// Engine parses source SQL into statement nodes and renders them in the
// target dialect.
type Engine interface {
	Parse(sql string) ([]introspect.Node, error)
	Render(stmts []introspect.Node, pretty bool) ([]string, error)
}

// StatementSeparator joins rendered statements.
const StatementSeparator = ";\n"

// Config holds service configuration.
type Config struct {
	// Engine performs the actual parsing and rendering (required).
	Engine Engine
	// Pretty is used when a request leaves Pretty unset. Defaults to true.
	Pretty *bool
	// Workers bounds batch concurrency; <= 0 means GOMAXPROCS.
	Workers int
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Service converts and parses SQL. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	engine  Engine
	pretty  bool
	workers int
	logger  *slog.Logger
}

// ErrNoEngine is returned by New when Config.Engine is nil.
var ErrNoEngine = errors.New("convert: engine is required")

// New creates a service.
func New(cfg Config) (*Service, error) {
	if cfg.Engine == nil {
		return nil, ErrNoEngine
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pretty := true
	if cfg.Pretty != nil {
		pretty = *cfg.Pretty
	}
	return &Service{
		engine:  cfg.Engine,
		pretty:  pretty,
		workers: cfg.Workers,
		logger:  logger,
	}, nil
}

// ConvertOne parses req.SourceSQL and renders every statement, joined by
// StatementSeparator. Any failure fails the whole request.
func (s *Service) ConvertOne(req ConversionRequest) ConversionResult {
	pretty := s.pretty
	if req.Pretty != nil {
		pretty = *req.Pretty
	}

	stmts, err := guard(StageParse, func() ([]introspect.Node, error) {
		return s.engine.Parse(req.SourceSQL)
	})
	if err != nil {
		return s.convertFailure(req, err)
	}

	rendered, err := guard(StageRender, func() ([]string, error) {
		return s.engine.Render(stmts, pretty)
	})
	if err != nil {
		return s.convertFailure(req, err)
	}

	s.logger.Debug("converted",
		slog.Int("statements", len(stmts)),
		slog.Bool("pretty", pretty))
	return ConversionResult{
		SourceSQL: req.SourceSQL,
		TargetSQL: strings.Join(rendered, StatementSeparator),
		Success:   true,
	}
}

// ParseOne parses req.SourceSQL and serializes each statement.
func (s *Service) ParseOne(req ParseRequest) ParseResult {
	stmts, err := guard(StageParse, func() ([]introspect.Node, error) {
		return s.engine.Parse(req.SourceSQL)
	})
	if err != nil {
		return s.parseFailure(req, err)
	}

	trees, err := guard(StageIntrospect, func() ([]*introspect.Tree, error) {
		out := make([]*introspect.Tree, 0, len(stmts))
		for i, stmt := range stmts {
			tree, err := introspect.Serialize(stmt)
			if err != nil {
				return nil, fmt.Errorf("statement %d: %w", i+1, err)
			}
			out = append(out, tree)
		}
		return out, nil
	})
	if err != nil {
		return s.parseFailure(req, err)
	}

	s.logger.Debug("parsed", slog.Int("statements", len(trees)))
	return ParseResult{
		SourceSQL:       req.SourceSQL,
		ParsedStructure: &ParsedStructure{Statements: trees, StatementCount: len(trees)},
		Success:         true,
	}
}

func (s *Service) convertFailure(req ConversionRequest, err error) ConversionResult {
	stage := stageOf(err)
	s.logger.Debug("conversion failed", slog.String("stage", stage), slog.String("error", err.Error()))
	return ConversionResult{
		SourceSQL:    req.SourceSQL,
		ErrorMessage: message(err),
		ErrorStage:   stage,
	}
}

func (s *Service) parseFailure(req ParseRequest, err error) ParseResult {
	stage := stageOf(err)
	s.logger.Debug("parse failed", slog.String("stage", stage), slog.String("error", err.Error()))
	return ParseResult{
		SourceSQL:       req.SourceSQL,
		ParsedStructure: &ParsedStructure{},
		ErrorMessage:    message(err),
		ErrorStage:      stage,
	}
}

// guard runs fn and turns a panic into a *StageError so nothing escapes
// the service boundary.
func guard[T any](stage string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = &StageError{Stage: stage, Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	result, err = fn()
	if err != nil {
		err = &StageError{Stage: stage, Err: err}
	}
	return result, err
}
