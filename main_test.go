package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comics/assistant"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogValidate(t *testing.T) {
	out, err := runCLI(t, "", "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")
}

func TestCatalogList(t *testing.T) {
	out, err := runCLI(t, "", "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Videogamer")
	assert.Contains(t, out, "videogamer-1")
	assert.Contains(t, out, "pandey")
}

func TestAskOneShot(t *testing.T) {
	out, err := runCLI(t, "", "ask", "who", "are", "you")
	require.NoError(t, err)
	assert.Equal(t, assistant.ErrDeflected.Error()+"\n", out)
}

func TestAskREPL(t *testing.T) {
	out, err := runCLI(t, "tell me about pandey\n\nexit\nnever asked\n", "ask")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, assistant.Greeting))
	assert.Equal(t, 1, strings.Count(out, "Mr. Effort says"))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	log, err := newLogger("nonsense")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
}
