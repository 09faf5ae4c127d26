package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// normalize expands user paths against the real user's home (not the
// elevated identity's) and makes the source dir absolute.
func (c *Config) normalize(home string) error {
	var err error
	if c.Paths.BinDir, err = expandPath(c.Paths.BinDir, home); err != nil {
		return fmt.Errorf("paths.bin_dir: %w", err)
	}
	if c.Paths.ConfigDir, err = expandPath(c.Paths.ConfigDir, home); err != nil {
		return fmt.Errorf("paths.config_dir: %w", err)
	}
	if c.Paths.UnitDir, err = expandPath(c.Paths.UnitDir, home); err != nil {
		return fmt.Errorf("paths.unit_dir: %w", err)
	}
	if c.Paths.BuildDir, err = expandPath(c.Paths.BuildDir, home); err != nil {
		return fmt.Errorf("paths.build_dir: %w", err)
	}

	c.SourceDir = strings.TrimSpace(c.SourceDir)
	if c.SourceDir == "" {
		c.SourceDir = defaultSourceDir
	}
	if c.SourceDir, err = filepath.Abs(c.SourceDir); err != nil {
		return fmt.Errorf("source_dir: %w", err)
	}

	c.Daemon.Name = strings.TrimSpace(c.Daemon.Name)
	c.Daemon.Unit = strings.TrimSpace(c.Daemon.Unit)
	return nil
}

func expandPath(path, home string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}
	if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("unsupported home reference %q", path)
	}
	return filepath.Clean(path), nil
}
