package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"system_file": "/data/system.json",
		"workers": 3
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	assert.Equal(t, "/data/system.json", cfg.SystemFile)
	assert.Equal(t, filepath.Join("/data", "cache"), cfg.CacheDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 2, cfg.Subdivisions)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{SystemFile: "a.json", Workers: 2}
	cfg.Resolve(Flags{SystemFile: "b.json", Workers: 8, Rebuild: true})

	assert.Equal(t, "b.json", cfg.SystemFile)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Rebuild)
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	cfg := Config{LogLevel: "shouty"}
	_, err := cfg.NewLogger()
	assert.Error(t, err)
}

func TestNewLoggerWithFileSink(t *testing.T) {
	cfg := Config{LogLevel: "debug", LogFile: filepath.Join(t.TempDir(), "build.log")}
	log, err := cfg.NewLogger()
	require.NoError(t, err)
	log.Info("hello")
	log.Sync()

	_, statErr := os.Stat(cfg.LogFile)
	assert.NoError(t, statErr)
}
