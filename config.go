package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfig is the optional lime.toml project file. It supplies
// defaults for the debug dump locations and the backend command; CLI flags
// always win over it.
type ProjectConfig struct {
	Debug   DebugConfig   `toml:"debug"`
	Backend BackendConfig `toml:"backend"`
}

type DebugConfig struct {
	Dir string `toml:"dir"` // directory for ast.json / ir.ll dumps
}

type BackendConfig struct {
	Command string `toml:"command"` // IR interpreter/compiler to hand the module to
	NoRun   bool   `toml:"norun"`   // stop after IR emission by default
}

// DefaultConfig returns the configuration used when no lime.toml exists.
func DefaultConfig() *ProjectConfig {
	return &ProjectConfig{
		Debug:   DebugConfig{Dir: "debug"},
		Backend: BackendConfig{Command: "lli"},
	}
}

// FindConfigFile walks from startDir toward the filesystem root looking
// for a lime.toml.
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		path := filepath.Join(dir, "lime.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadConfig loads the project config nearest to startDir, falling back to
// defaults for the file itself and for any field left unset.
func LoadConfig(startDir string) (*ProjectConfig, error) {
	path := FindConfigFile(startDir)
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Debug.Dir == "" {
		cfg.Debug.Dir = "debug"
	}
	if cfg.Backend.Command == "" {
		cfg.Backend.Command = "lli"
	}
	return cfg, nil
}
