// Package main provides tests for the sqlconvert CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hxx258456/sql-convert/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "sqlconvert") {
		t.Errorf("version output should contain 'sqlconvert', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"convert", "parse", "batch", "dialects", "repl"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestConvertCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"convert", "--from", "mysql", "--to", "oracle", "--output", "text", "--pretty=false",
		"SELECT IFNULL(a, 0) FROM t LIMIT 3"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert command error = %v", err)
	}

	want := "SELECT NVL(a, 0) FROM t FETCH FIRST 3 ROWS ONLY\n"
	if out.String() != want {
		t.Errorf("convert output = %q, want %q", out.String(), want)
	}
}
