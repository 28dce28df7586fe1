package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxx258456/sql-convert/internal/cli"
	"github.com/hxx258456/sql-convert/internal/cli/config"
)

func TestConfigSchemaMatchesDefaults(t *testing.T) {
	require.NoError(t, checkSchema(getConfigSchema(), config.Defaults()))

	err := checkSchema(getConfigSchema()[1:], config.Defaults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_dialect")
}

func TestCommandPage(t *testing.T) {
	root := cli.NewRootCmd()
	convertCmd, _, err := root.Find([]string{"convert"})
	require.NoError(t, err)

	page := string(commandPage(convertCmd).Bytes())
	assert.Contains(t, page, generatedMarker)
	assert.Contains(t, page, "# convert\n")
	assert.Contains(t, page, "## Usage\n")
	assert.Contains(t, page, "`--input`")
	assert.Contains(t, page, "`--from`")
}

func TestGenerateAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(filepath.Join(dir, "cli")))
	require.NoError(t, generateConfigDocs(dir))
	require.NoError(t, generateDialectDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "cli", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[`batch`](/cli/batch)")

	dialects, err := os.ReadFile(filepath.Join(dir, "dialects.md"))
	require.NoError(t, err)
	assert.Contains(t, string(dialects), "`postgres`")
	assert.Contains(t, string(dialects), "`pg`")

	cfg, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "`SQLCONVERT_TARGET_DIALECT`")
}
