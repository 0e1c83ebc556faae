package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefs-generator/internal/config"
	"prefs-generator/internal/diagnostic"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestCheck_Broken(t *testing.T) {
	out, err := execute(t, "check", "--log-level", "warn", "prefs-generator/examples/broken")
	require.ErrorIs(t, err, errDiagnostics)

	for _, code := range []string{"E001", "E003", "E004", "E005", "E006", "E007", "W001", "W002", "W003", "W004"} {
		assert.Contains(t, out, "["+code+"]")
	}

	assert.Contains(t, out, "broken.go:")
	assert.Contains(t, out, "(did you mean cachedValu?)")
	assert.Contains(t, out, "7 errors, 5 warnings")
}

func TestCheck_Clean(t *testing.T) {
	out, err := execute(t, "check", "--log-level", "error", "prefs-generator/examples/settings")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGen_Out(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "gen", "--out", dir, "--suffix", "Impl", "--comments=false",
		"prefs-generator/examples/settings")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "session_prefs.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "type SessionImpl struct {")
	assert.NotContains(t, string(content), "// NewSessionImpl")

	for _, name := range []string{"example_prefs.go", "cache_example_prefs.go", "cache_on_put_example_prefs.go"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestGen_BadConfig(t *testing.T) {
	_, err := execute(t, "gen", "--log-format", "xml", "prefs-generator/examples/settings")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errDiagnostics)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefsgen.log")

	var console bytes.Buffer
	logger, closeLog, err := newLogger(config.LogConfig{Level: "info", Format: config.FormatJSON, File: path}, &console)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("wrote file", "path", "a_prefs.go")
	require.NoError(t, closeLog())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, console.String(), string(content))
	assert.Contains(t, string(content), `"msg":"wrote file"`)
	assert.NotContains(t, string(content), "hidden")
}

func TestCount(t *testing.T) {
	one := []diagnostic.Diagnostic{{Code: diagnostic.CodeTypeMismatch}}

	assert.Equal(t, "0 errors", count(nil, "error"))
	assert.Equal(t, "1 error", count(one, "error"))
	assert.Equal(t, "2 warnings", count(append(one, one...), "warning"))
}
