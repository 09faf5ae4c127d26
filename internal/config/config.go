package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains the install locations and the isolated build directory.
type Paths struct {
	BinDir    string `toml:"bin_dir"`
	ConfigDir string `toml:"config_dir"`
	UnitDir   string `toml:"unit_dir"`
	BuildDir  string `toml:"build_dir"`
}

// Daemon identifies the managed daemon.
type Daemon struct {
	// Name is both the binary name and the exact process name used for
	// signal delivery.
	Name string `toml:"name"`
	Unit string `toml:"unit"`
}

// Update controls staleness detection for the update command.
type Update struct {
	// Patterns are glob patterns (doublestar syntax, ** supported) relative
	// to the source tree, evaluated in order.
	Patterns []string `toml:"patterns"`
}

// Config is the resolved installer configuration. It is constructed once at
// process entry from the real user's identity and is immutable afterwards.
type Config struct {
	Paths  Paths  `toml:"paths"`
	Daemon Daemon `toml:"daemon"`
	Update Update `toml:"update"`

	// SourceDir is the daemon source tree; set from the --source flag.
	SourceDir string `toml:"source_dir"`
}

// Load builds the configuration for the given home directory, applying the
// optional TOML override file on top of defaults. When path is empty the
// defaults are used as-is.
func Load(path, home string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s does not exist", path)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.normalize(home); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BinaryPath is the installed daemon binary location.
func (c *Config) BinaryPath() string {
	return filepath.Join(c.Paths.BinDir, c.Daemon.Name)
}

// UnitPath is the installed service unit location.
func (c *Config) UnitPath() string {
	return filepath.Join(c.Paths.UnitDir, c.Daemon.Unit)
}

// UnitSourcePath is where the unit file is expected inside the source tree.
func (c *Config) UnitSourcePath() string {
	return filepath.Join(c.SourceDir, c.Daemon.Unit)
}

// ConfigFilePath is the daemon's own configuration file. Its content and
// format belong to the daemon; the installer only reports and preserves it.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Paths.ConfigDir, "config.toml")
}

// ArtifactPath is where the build toolchain leaves the release binary.
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.Paths.BuildDir, "release", c.Daemon.Name)
}
