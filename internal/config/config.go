package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and build settings.
type Config struct {
	// Paths
	SystemFile   string `json:"system_file"`   // body definition tree
	CacheDir     string `json:"cache_dir"`     // scaled-space mesh cache
	TextureDir   string `json:"texture_dir"`   // texture asset root
	TemplateMesh string `json:"template_mesh"` // optional reference mesh record

	// Build settings
	Subdivisions int  `json:"subdivisions"` // geosphere subdivision level
	Workers      int  `json:"workers"`
	Rebuild      bool `json:"rebuild"`

	// Logging
	LogFile  string `json:"log_file"` // empty disables the file sink
	LogLevel string `json:"log_level"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SystemFile string
	CacheDir   string
	TextureDir string
	Workers    int
	Rebuild    bool
	LogFile    string
	LogLevel   string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.SystemFile != "" {
		c.SystemFile = flags.SystemFile
	}
	if flags.CacheDir != "" {
		c.CacheDir = flags.CacheDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Rebuild {
		c.Rebuild = true
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.SystemFile == "" {
		c.SystemFile = "system.json"
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(filepath.Dir(c.SystemFile), "cache")
	}
	if c.Subdivisions <= 0 {
		c.Subdivisions = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
