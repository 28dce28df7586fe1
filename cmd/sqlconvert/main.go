// Package main provides the sqlconvert command-line tool.
package main

import (
	"os"

	"github.com/hxx258456/sql-convert/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
