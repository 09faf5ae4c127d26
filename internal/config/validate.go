package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) validate() error {
	if c.Daemon.Name == "" {
		return fmt.Errorf("daemon.name must not be empty")
	}
	if strings.ContainsRune(c.Daemon.Name, filepath.Separator) {
		return fmt.Errorf("daemon.name %q must be a bare name, not a path", c.Daemon.Name)
	}
	if c.Daemon.Unit == "" {
		return fmt.Errorf("daemon.unit must not be empty")
	}
	if !strings.HasSuffix(c.Daemon.Unit, ".service") {
		return fmt.Errorf("daemon.unit %q must end in .service", c.Daemon.Unit)
	}
	if len(c.Update.Patterns) == 0 {
		return fmt.Errorf("update.patterns must not be empty")
	}
	for _, dir := range []struct {
		name string
		path string
	}{
		{"paths.bin_dir", c.Paths.BinDir},
		{"paths.config_dir", c.Paths.ConfigDir},
		{"paths.unit_dir", c.Paths.UnitDir},
		{"paths.build_dir", c.Paths.BuildDir},
	} {
		if !filepath.IsAbs(dir.path) {
			return fmt.Errorf("%s %q must be absolute after expansion", dir.name, dir.path)
		}
	}
	return nil
}
