package testsupport

import (
	"path/filepath"
	"testing"

	"cherryctl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfg := &config.Config{
		Paths: config.Paths{
			BinDir:    filepath.Join(base, "bin"),
			ConfigDir: filepath.Join(base, "config"),
			UnitDir:   filepath.Join(base, "units"),
			BuildDir:  filepath.Join(base, "build"),
		},
		Daemon:    cfgVal.Daemon,
		Update:    cfgVal.Update,
		SourceDir: filepath.Join(base, "source"),
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
