package convert

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxx258456/sql-convert/internal/introspect"
	"github.com/hxx258456/sql-convert/internal/testutil"
	"github.com/hxx258456/sql-convert/pkg/transpile"
)

// fakeEngine lets tests script parse and render behavior.
type fakeEngine struct {
	parse  func(sql string) ([]introspect.Node, error)
	render func(stmts []introspect.Node, pretty bool) ([]string, error)
}

func (f *fakeEngine) Parse(sql string) ([]introspect.Node, error) { return f.parse(sql) }

func (f *fakeEngine) Render(stmts []introspect.Node, pretty bool) ([]string, error) {
	return f.render(stmts, pretty)
}

type stmtNode struct{ typ, sql string }

func (n stmtNode) Type() string { return n.typ }
func (n stmtNode) SQL() string  { return n.sql }

// echoEngine treats every ';'-separated piece as a statement and renders
// it in upper case, suffixed with the pretty flag.
func echoEngine() *fakeEngine {
	return &fakeEngine{
		parse: func(sql string) ([]introspect.Node, error) {
			if strings.Contains(sql, "BAD") {
				return nil, errors.New("syntax error near BAD")
			}
			var out []introspect.Node
			for _, part := range strings.Split(sql, ";") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, stmtNode{typ: "Stmt", sql: part})
				}
			}
			return out, nil
		},
		render: func(stmts []introspect.Node, pretty bool) ([]string, error) {
			out := make([]string, len(stmts))
			for i, s := range stmts {
				out[i] = strings.ToUpper(s.SQL())
				if pretty {
					out[i] += " /*pretty*/"
				}
			}
			return out, nil
		},
	}
}

func newService(t *testing.T, eng Engine, workers int) *Service {
	t.Helper()
	svc, err := New(Config{Engine: eng, Workers: workers, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	return svc
}

func mysqlToOracle(t *testing.T, workers int) *Service {
	t.Helper()
	eng, err := transpile.New("mysql", "oracle")
	require.NoError(t, err)
	return newService(t, eng, workers)
}

func ptr[T any](v T) *T { return &v }

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.True(t, errors.Is(err, ErrNoEngine))

	svc, err := New(Config{Engine: echoEngine()})
	require.NoError(t, err)
	assert.True(t, svc.pretty)

	svc, err = New(Config{Engine: echoEngine(), Pretty: ptr(false), Workers: 3})
	require.NoError(t, err)
	assert.False(t, svc.pretty)
	assert.Equal(t, 3, svc.Workers())
}

func TestConvertOne_Pretty(t *testing.T) {
	svc := newService(t, echoEngine(), 1)

	res := svc.ConvertOne(ConversionRequest{SourceSQL: "select 1"})
	assert.True(t, res.Success)
	assert.Equal(t, "SELECT 1 /*pretty*/", res.TargetSQL)

	res = svc.ConvertOne(ConversionRequest{SourceSQL: "select 1", Pretty: ptr(false)})
	assert.Equal(t, "SELECT 1", res.TargetSQL)
}

func TestConvertOne_JoinsStatements(t *testing.T) {
	svc := newService(t, echoEngine(), 1)
	res := svc.ConvertOne(ConversionRequest{SourceSQL: "a; b; c", Pretty: ptr(false)})
	require.True(t, res.Success)
	assert.Equal(t, "A;\nB;\nC", res.TargetSQL)
	assert.Equal(t, "a; b; c", res.SourceSQL)
}

func TestConvertOne_Failures(t *testing.T) {
	tests := []struct {
		name      string
		engine    *fakeEngine
		wantStage string
		wantMsg   string
	}{
		{
			name: "parse error",
			engine: &fakeEngine{
				parse: func(string) ([]introspect.Node, error) { return nil, errors.New("bad token") },
			},
			wantStage: StageParse,
			wantMsg:   "bad token",
		},
		{
			name: "render error",
			engine: &fakeEngine{
				parse:  echoEngine().parse,
				render: func([]introspect.Node, bool) ([]string, error) { return nil, errors.New("no such thing") },
			},
			wantStage: StageRender,
			wantMsg:   "no such thing",
		},
		{
			name: "parse panic",
			engine: &fakeEngine{
				parse: func(string) ([]introspect.Node, error) { panic("boom") },
			},
			wantStage: StageParse,
			wantMsg:   "internal error: boom",
		},
		{
			name: "render panic",
			engine: &fakeEngine{
				parse:  echoEngine().parse,
				render: func([]introspect.Node, bool) ([]string, error) { panic(errors.New("kaput")) },
			},
			wantStage: StageRender,
			wantMsg:   "internal error: kaput",
		},
		{
			name: "empty message",
			engine: &fakeEngine{
				parse: func(string) ([]introspect.Node, error) { return nil, errors.New("") },
			},
			wantStage: StageParse,
			wantMsg:   "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.engine, 1)
			var res ConversionResult
			require.NotPanics(t, func() {
				res = svc.ConvertOne(ConversionRequest{SourceSQL: "select 1"})
			})
			assert.False(t, res.Success)
			assert.Empty(t, res.TargetSQL)
			assert.Equal(t, "select 1", res.SourceSQL)
			assert.Equal(t, tt.wantStage, res.ErrorStage)
			assert.Contains(t, res.ErrorMessage, tt.wantMsg)
		})
	}
}

func TestConvertOne_MySQLToOracle(t *testing.T) {
	svc := mysqlToOracle(t, 1)

	t.Run("single statement pretty by default", func(t *testing.T) {
		res := svc.ConvertOne(ConversionRequest{SourceSQL: "SELECT * FROM users WHERE age > 18"})
		require.True(t, res.Success, res.ErrorMessage)
		assert.Empty(t, res.ErrorMessage)
		assert.Equal(t, "SELECT\n  *\nFROM users\nWHERE\n  age > 18", res.TargetSQL)
		assert.NotContains(t, res.TargetSQL, StatementSeparator)
	})

	t.Run("compact", func(t *testing.T) {
		res := svc.ConvertOne(ConversionRequest{SourceSQL: "SELECT id FROM users LIMIT 10", Pretty: ptr(false)})
		require.True(t, res.Success, res.ErrorMessage)
		assert.Equal(t, "SELECT id FROM users FETCH FIRST 10 ROWS ONLY", res.TargetSQL)
	})

	t.Run("multiple statements", func(t *testing.T) {
		res := svc.ConvertOne(ConversionRequest{SourceSQL: "SELECT 1; SELECT NOW()", Pretty: ptr(false)})
		require.True(t, res.Success, res.ErrorMessage)
		assert.Equal(t, "SELECT 1 FROM DUAL;\nSELECT SYSTIMESTAMP FROM DUAL", res.TargetSQL)
	})

	t.Run("empty input", func(t *testing.T) {
		var res ConversionResult
		require.NotPanics(t, func() {
			res = svc.ConvertOne(ConversionRequest{SourceSQL: ""})
		})
		assert.True(t, res.Success)
		assert.Empty(t, res.TargetSQL)
	})

	t.Run("no statements", func(t *testing.T) {
		for _, sql := range []string{"-- only comment", "/* note */", ";", " ; ;", "   "} {
			res := svc.ConvertOne(ConversionRequest{SourceSQL: sql})
			assert.True(t, res.Success, "%q: %s", sql, res.ErrorMessage)
			assert.Empty(t, res.TargetSQL, "%q", sql)
			assert.Empty(t, res.ErrorStage, "%q", sql)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		res := svc.ConvertOne(ConversionRequest{SourceSQL: "SELEC FROM"})
		assert.False(t, res.Success)
		assert.Empty(t, res.TargetSQL)
		assert.Equal(t, StageParse, res.ErrorStage)
		assert.Contains(t, res.ErrorMessage, "line 1, column 1")
	})

	t.Run("render error", func(t *testing.T) {
		res := svc.ConvertOne(ConversionRequest{SourceSQL: "SELECT GROUP_CONCAT(name) FROM users"})
		assert.False(t, res.Success)
		assert.Empty(t, res.TargetSQL)
		assert.Equal(t, StageRender, res.ErrorStage)
		assert.Contains(t, res.ErrorMessage, "GROUP_CONCAT is not supported in oracle dialect")
	})
}

func TestParseOne(t *testing.T) {
	svc := mysqlToOracle(t, 1)

	t.Run("multi statement insert", func(t *testing.T) {
		res := svc.ParseOne(ParseRequest{SourceSQL: "INSERT INTO t VALUES (1); INSERT INTO t VALUES (2)"})
		require.True(t, res.Success, res.ErrorMessage)
		require.NotNil(t, res.ParsedStructure)
		assert.Equal(t, 2, res.ParsedStructure.StatementCount)
		require.Len(t, res.ParsedStructure.Statements, 2)
		for _, stmt := range res.ParsedStructure.Statements {
			assert.Equal(t, "Insert", stmt.Type)
		}
	})

	t.Run("statement count matches input", func(t *testing.T) {
		for k := 1; k <= 4; k++ {
			sql := strings.Repeat("SELECT a FROM t;", k)
			res := svc.ParseOne(ParseRequest{SourceSQL: sql})
			require.True(t, res.Success, res.ErrorMessage)
			assert.Equal(t, k, res.ParsedStructure.StatementCount)
			assert.Len(t, res.ParsedStructure.Statements, k)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		res := svc.ParseOne(ParseRequest{SourceSQL: ""})
		require.True(t, res.Success)
		assert.Equal(t, 0, res.ParsedStructure.StatementCount)

		data, err := json.Marshal(res.ParsedStructure)
		require.NoError(t, err)
		assert.JSONEq(t, `{"statements":[],"statement_count":0}`, string(data))
	})

	t.Run("parse error", func(t *testing.T) {
		res := svc.ParseOne(ParseRequest{SourceSQL: "SELECT 'abc"})
		assert.False(t, res.Success)
		assert.Equal(t, StageParse, res.ErrorStage)
		assert.Contains(t, res.ErrorMessage, "unterminated quoted literal")

		data, err := json.Marshal(res)
		require.NoError(t, err)
		var wire map[string]any
		require.NoError(t, json.Unmarshal(data, &wire))
		assert.Equal(t, map[string]any{}, wire["parsed_structure"])
	})
}

func TestLongOrChain(t *testing.T) {
	svc := mysqlToOracle(t, 1)

	terms := make([]string, 1000)
	for i := range terms {
		terms[i] = "id = " + strconv.Itoa(i)
	}
	sql := "SELECT * FROM t WHERE " + strings.Join(terms, " OR ")

	conv := svc.ConvertOne(ConversionRequest{SourceSQL: sql, Pretty: ptr(false)})
	require.True(t, conv.Success, conv.ErrorMessage)
	assert.Equal(t, sql, conv.TargetSQL)

	parsed := svc.ParseOne(ParseRequest{SourceSQL: sql})
	require.True(t, parsed.Success, parsed.ErrorMessage)
	require.Len(t, parsed.ParsedStructure.Statements, 1)

	// Past the operator budget both operations fail at parse time.
	tooLong := "SELECT * FROM t WHERE " + strings.Repeat("a = 1 OR ", 2100) + "a = 1"
	conv = svc.ConvertOne(ConversionRequest{SourceSQL: tooLong})
	assert.False(t, conv.Success)
	assert.Equal(t, StageParse, conv.ErrorStage)
	parsed = svc.ParseOne(ParseRequest{SourceSQL: tooLong})
	assert.False(t, parsed.Success)
	assert.Equal(t, StageParse, parsed.ErrorStage)
	assert.Contains(t, parsed.ErrorMessage, "operators")
}

func TestParseOne_IntrospectionFailure(t *testing.T) {
	eng := &fakeEngine{
		parse: func(string) ([]introspect.Node, error) {
			return []introspect.Node{stmtNode{typ: "Stmt", sql: "a"}, stmtNode{sql: "b"}}, nil
		},
	}
	svc := newService(t, eng, 1)

	res := svc.ParseOne(ParseRequest{SourceSQL: "a; b"})
	assert.False(t, res.Success)
	assert.Equal(t, StageIntrospect, res.ErrorStage)
	assert.Contains(t, res.ErrorMessage, "statement 2")
	assert.Contains(t, res.ErrorMessage, "empty type tag")
	require.NotNil(t, res.ParsedStructure)
	assert.True(t, res.ParsedStructure.IsZero())
}

func TestParseOne_Deterministic(t *testing.T) {
	svc := mysqlToOracle(t, 1)
	req := ParseRequest{SourceSQL: "SELECT a, COUNT(*) AS n FROM t JOIN u ON t.id = u.id GROUP BY a"}

	first := svc.ParseOne(req)
	second := svc.ParseOne(req)
	require.True(t, first.Success, first.ErrorMessage)
	assert.Equal(t, first, second)
}
