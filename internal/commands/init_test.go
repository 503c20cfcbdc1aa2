package commands_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtimport/internal/config"
)

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runStmtimport(t, dir, "", "", "init", "--ledger-url", "http://ledger.test:5000")
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultFileName)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, "http://ledger.test:5000", cfg.Ledger.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Ledger.Timeout)
	assert.Equal(t, ",", cfg.Import.Delimiter)
}

func TestInit_IntoDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	_, _, err := runStmtimport(t, t.TempDir(), "", "", "init", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, config.DefaultFileName))
	assert.NoError(t, err)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStmtimport(t, dir, "", "", "init")
	require.NoError(t, err)

	_, stderr, err := runStmtimport(t, dir, "", "", "init")
	require.Error(t, err)
	assert.Contains(t, stderr, "already exists")

	_, _, err = runStmtimport(t, dir, "", "", "init", "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runStmtimport(t, t.TempDir(), "", "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "stmtimport version dev")
}
