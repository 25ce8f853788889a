package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topo-sh/topo/internal/render"
)

func TestQueryCmd_ShallowProducesJSONL(t *testing.T) {
	testDir := t.TempDir()
	writeTestFile(t, testDir, "auth.go", "package auth\n\nfunc Login() {}\n")
	writeTestFile(t, testDir, "README.md", "# project\n")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"query", "--path", testDir, "login"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	var header render.Header
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &header))
	assert.Equal(t, render.FormatVersion, header.Version)
	assert.Equal(t, "login", header.Query)

	var footer render.Footer
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &footer))
	assert.Equal(t, 2, footer.ScannedFiles)
}

func TestQueryCmd_DeepUsesPersistedIndex(t *testing.T) {
	testDir := t.TempDir()
	writeTestFile(t, testDir, "auth.go", "package auth\n\nfunc Login() {}\n")

	indexCmd := NewRootCmd()
	indexCmd.SetOut(new(bytes.Buffer))
	indexCmd.SetArgs([]string{"index", "--deep", testDir})
	require.NoError(t, indexCmd.Execute())

	queryCmd := NewRootCmd()
	buf := new(bytes.Buffer)
	queryCmd.SetOut(buf)
	queryCmd.SetArgs([]string{"query", "--path", testDir, "login"})
	require.NoError(t, queryCmd.Execute())

	scanner := bufio.NewScanner(buf)
	var count int
	for scanner.Scan() {
		count++
	}
	assert.GreaterOrEqual(t, count, 2)
}

func TestQueryCmd_EmbeddingsFileIsAcceptedAndScored(t *testing.T) {
	testDir := t.TempDir()
	writeTestFile(t, testDir, "auth.go", "package auth\n")
	writeTestFile(t, testDir, "other.go", "package other\n")

	embeddingsPath := filepath.Join(t.TempDir(), "embeddings.json")
	content := `{
		"Query": [1, 0, 0],
		"Files": {
			"auth.go": [1, 0, 0],
			"other.go": [0, 1, 0]
		}
	}`
	require.NoError(t, os.WriteFile(embeddingsPath, []byte(content), 0o644))

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"query", "--path", testDir, "--embeddings", embeddingsPath, "auth"})

	require.NoError(t, cmd.Execute())

	var sawFileRecord bool
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		if path, ok := rec["Path"]; ok && path == "auth.go" {
			sawFileRecord = true
		}
	}
	assert.True(t, sawFileRecord, "expected auth.go to appear in the rendered output")
}

func TestQueryCmd_EmbeddingsFileMissingReturnsError(t *testing.T) {
	testDir := t.TempDir()
	writeTestFile(t, testDir, "auth.go", "package auth\n")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"query", "--path", testDir, "--embeddings", filepath.Join(t.TempDir(), "missing.json"), "auth"})

	assert.Error(t, cmd.Execute())
}

func TestQueryCmd_MinScoreFiltersOutput(t *testing.T) {
	testDir := t.TempDir()
	writeTestFile(t, testDir, "a.go", "package a\n")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"query", "--path", testDir, "--min-score", "999", "nothing"})

	require.NoError(t, cmd.Execute())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2) // header + footer only

	var footer render.Footer
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &footer))
	assert.Equal(t, 0, footer.TotalFiles)
}
