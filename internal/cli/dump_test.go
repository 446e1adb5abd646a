package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpText(t *testing.T) {
	file := writeFile(t, t.TempDir(), "sample.let", "let x = 1")

	res := runCLI(t, "", "dump", file)
	require.NoError(t, res.err)
	assert.Regexp(t, `(?m)^OFFSET\s+CHAR\s+CLASS\s+FACE$`, res.stdout)
	assert.Regexp(t, `(?m)^4\s+"x"\s+word\s+variable-name$`, res.stdout)
	assert.Regexp(t, `(?m)^6\s+"="\s+operator\s+none$`, res.stdout)
}

func TestDumpJSON(t *testing.T) {
	file := writeFile(t, t.TempDir(), "sample.let", "let x = 1")

	res := runCLI(t, "", "--format", "json", "dump", file)
	require.NoError(t, res.err)

	var resp struct {
		Status string      `json:"status"`
		Data   []CharEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 9)
	assert.Equal(t, CharEntry{Offset: 0, Char: "l", Class: "keyword", Face: "keyword"}, resp.Data[0])
	assert.Equal(t, CharEntry{Offset: 8, Char: "1", Class: "constant", Face: "number"}, resp.Data[8])
}

func TestDumpLines(t *testing.T) {
	file := writeFile(t, t.TempDir(), "sample.let", "let a\nlet b\n")

	res := runCLI(t, "", "--format", "json", "dump", "--lines", file)
	require.NoError(t, res.err)

	var resp struct {
		Data []CharEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	require.Len(t, resp.Data, 12)
	assert.Equal(t, "variable-name", resp.Data[10].Face)
}

func TestDumpErrors(t *testing.T) {
	file := writeFile(t, t.TempDir(), "sample.let", "x")

	res := runCLI(t, "", "dump", filepath.Join(t.TempDir(), "missing.let"))
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), "file not found")

	res = runCLI(t, "", "dump", "--mode", "cobol", file)
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), `unknown mode "cobol"`)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
	assert.Nil(t, splitLines(""))
	assert.Nil(t, splitLines("\n"))
}
