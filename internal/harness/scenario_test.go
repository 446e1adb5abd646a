package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario_Valid(t *testing.T) {
	data := []byte(`
name: let_binding
description: keywords and numbers
lines:
  - "let x = 1"
equivalence: true
expect:
  - text: let
    classes: [keyword]
    face: keyword
  - text: "1"
    face: none
assertions:
  - type: face_at
    offset: 4
    face: variable-name
  - type: check_count
    count: 2
`)
	s, err := ParseScenario(data)
	require.NoError(t, err)

	assert.Equal(t, "let_binding", s.Name)
	assert.Equal(t, DefaultMode, s.modeName())
	assert.Equal(t, []string{"let x = 1"}, s.Lines)
	assert.True(t, s.Equivalence)
	require.Len(t, s.Expect, 2)
	assert.Equal(t, []string{"keyword"}, s.Expect[0].Classes)
	require.NotNil(t, s.Expect[0].Face)
	assert.Equal(t, "keyword", *s.Expect[0].Face)
	assert.Nil(t, s.Expect[1].Classes, "omitted classes match anything")
	require.Len(t, s.Assertions, 2)
	assert.Equal(t, AssertFaceAt, s.Assertions[0].Type)
	assert.Equal(t, 4, s.Assertions[0].Offset)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: a\ndescription: d\ncontent: x\nexpects: []\n",
			wantErr: "field expects not found",
		},
		{
			name:    "unknown class",
			yaml:    "name: a\ndescription: d\ncontent: x\nexpect:\n  - text: x\n    classes: [identifier]\n",
			wantErr: "schema",
		},
		{
			name:    "bad name",
			yaml:    "name: a b\ndescription: d\ncontent: x\nexpect:\n  - text: x\n",
			wantErr: "schema",
		},
		{
			name:    "missing description",
			yaml:    "name: a\ncontent: x\nexpect:\n  - text: x\n",
			wantErr: "description",
		},
		{
			name:    "content and lines",
			yaml:    "name: a\ndescription: d\ncontent: x\nlines: [x]\nexpect:\n  - text: x\n",
			wantErr: "exactly one of content and lines",
		},
		{
			name:    "no content",
			yaml:    "name: a\ndescription: d\nexpect:\n  - text: x\n",
			wantErr: "exactly one of content and lines",
		},
		{
			name:    "equivalence without lines",
			yaml:    "name: a\ndescription: d\ncontent: x\nequivalence: true\nexpect:\n  - text: x\n",
			wantErr: "equivalence requires lines",
		},
		{
			name:    "nothing to check",
			yaml:    "name: a\ndescription: d\ncontent: x\n",
			wantErr: "expect or assertions",
		},
		{
			name:    "unknown mode",
			yaml:    "name: a\ndescription: d\nmode: cobol\ncontent: x\nexpect:\n  - text: x\n",
			wantErr: `unknown mode "cobol"`,
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: a\ndescription: d\ncontent: x\nassertions:\n  - type: trace_order\n",
			wantErr: "schema",
		},
		{
			name:    "face_at without face",
			yaml:    "name: a\ndescription: d\ncontent: x\nassertions:\n  - type: face_at\n    offset: 0\n",
			wantErr: "face is required for face_at",
		},
		{
			name:    "reversed range",
			yaml:    "name: a\ndescription: d\ncontent: xyz\nassertions:\n  - type: range\n    beg: 2\n    end: 1\n    face: none\n",
			wantErr: "0 <= beg <= end",
		},
		{
			name:    "range without matchers",
			yaml:    "name: a\ndescription: d\ncontent: xyz\nassertions:\n  - type: range\n    beg: 0\n    end: 1\n",
			wantErr: "classes or face",
		},
		{
			name:    "malformed yaml",
			yaml:    "name: [a\n",
			wantErr: "failed to parse YAML",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: ok\ndescription: d\ncontent: in\nexpect:\n  - text: in\n"), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "in", s.Content)

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenario_Testdata(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		_, err := LoadScenario(f)
		assert.NoError(t, err, f)
	}
}
