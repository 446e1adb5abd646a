package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fontverify/internal/isolate"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	return path
}

// isolateFromUser points the lookup at empty directories.
func isolateFromUser(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolateFromUser(t)
	path := writeConfig(t, `
mode: fundamental
db: results.db
faces:
  keyword:
    fg: "#FF0000"
    bold: false
  custom:
    fg: "33"
    underline: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fundamental", cfg.Mode)
	assert.Equal(t, "results.db", cfg.DB)
	assert.Empty(t, cfg.GoldenDir, "unset keys keep defaults")
	assert.Equal(t, FaceStyle{Fg: "#FF0000"}, cfg.Faces["keyword"])
	assert.Equal(t, FaceStyle{Fg: "33", Underline: true}, cfg.Faces["custom"])
	assert.Equal(t, Defaults().Faces["string"], cfg.Faces["string"])
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolateFromUser(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_LocalConfig(t *testing.T) {
	isolateFromUser(t)
	require.NoError(t, os.MkdirAll(".fontverify", 0755))
	require.NoError(t, os.WriteFile(LocalConfig, []byte("golden_dir: goldens\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "goldens", cfg.GoldenDir)
}

func TestLoad_UserConfig(t *testing.T) {
	isolateFromUser(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, UserDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("db: user.db\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "user.db", cfg.DB)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateFromUser(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_InvalidColor(t *testing.T) {
	isolateFromUser(t)
	path := writeConfig(t, "faces:\n  keyword:\n    fg: red\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, `faces.keyword.fg: invalid color "red"`)
}

func TestLoad_NoInitSkipsFiles(t *testing.T) {
	isolateFromUser(t)
	t.Setenv(isolate.EnvNoInit, "1")
	path := writeConfig(t, "mode: fundamental\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestDefaults_Valid(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
}
