// Package config loads optional .prrisk.yaml settings. Flags override
// config values; both fall back to built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ducdmdev/prrisk/internal/analysis"
)

// DefaultFileName is looked up in the analyzed repository's root when
// no explicit config path is given.
const DefaultFileName = ".prrisk.yaml"

// Config is the file-backed configuration.
type Config struct {
	BaseBranch string           `yaml:"baseBranch"`
	HeadBranch string           `yaml:"headBranch"`
	MaxDepth   int              `yaml:"maxDepth"`
	Skip       []string         `yaml:"skip"` // breaking, coverage, docs
	Weights    analysis.Weights `yaml:"weights"`
	Server     ServerConfig     `yaml:"server"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth: analysis.DefaultMaxDepth,
		Weights:  analysis.DefaultWeights(),
		Server:   ServerConfig{Addr: "localhost:8917"},
	}
}

var validSkips = map[string]bool{"breaking": true, "coverage": true, "docs": true}

// Load reads the config at path, or the repository default location
// when path is empty. A missing default file is not an error; a
// missing explicit file is.
func Load(path, repoPath string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(repoPath, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown skip names and weights not summing to 1.00.
func (c Config) Validate() error {
	for _, s := range c.Skip {
		if !validSkips[s] {
			return fmt.Errorf("unknown skip %q (want breaking, coverage or docs)", s)
		}
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must be positive, got %d", c.MaxDepth)
	}
	return c.Weights.Validate()
}

// SkipSet returns the skip list as a lookup set.
func (c Config) SkipSet() map[string]bool {
	set := make(map[string]bool, len(c.Skip))
	for _, s := range c.Skip {
		set[s] = true
	}
	return set
}
