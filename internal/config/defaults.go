package config

const (
	defaultDaemonName = "cherrypie"
	defaultUnitName   = "cherrypie.service"
	defaultBinDir     = "~/.local/bin"
	defaultConfigDir  = "~/.config/cherrypie"
	defaultUnitDir    = "~/.config/systemd/user"
	defaultBuildDir   = "/tmp/cherrypie-build"
	defaultSourceDir  = "."
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BinDir:    defaultBinDir,
			ConfigDir: defaultConfigDir,
			UnitDir:   defaultUnitDir,
			BuildDir:  defaultBuildDir,
		},
		Daemon: Daemon{
			Name: defaultDaemonName,
			Unit: defaultUnitName,
		},
		Update: Update{
			Patterns: []string{"src/**/*.rs", "Cargo.toml"},
		},
		SourceDir: defaultSourceDir,
	}
}
