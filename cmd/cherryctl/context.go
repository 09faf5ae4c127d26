package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cherryctl/internal/build"
	"cherryctl/internal/config"
	"cherryctl/internal/deps"
	"cherryctl/internal/execx"
	"cherryctl/internal/identity"
	"cherryctl/internal/installer"
	"cherryctl/internal/logging"
	"cherryctl/internal/prompt"
	"cherryctl/internal/systemd"
	"cherryctl/internal/terminate"
)

// commandContext lazily resolves identity, configuration, and the logger the
// first time a command needs them, so help and completion never touch the
// user database.
type commandContext struct {
	configFlag  *string
	sourceFlag  *string
	verboseFlag *bool

	once sync.Once
	id   identity.Identity
	cfg  *config.Config
	log  *slog.Logger
	err  error
}

func newCommandContext(configFlag, sourceFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		sourceFlag:  sourceFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensure() error {
	c.once.Do(func() {
		id, err := identity.NewResolver().Resolve()
		if err != nil {
			c.err = err
			return
		}
		c.id = id

		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path, id.Home)
		if err != nil {
			c.err = err
			return
		}
		if c.sourceFlag != nil {
			if src := strings.TrimSpace(*c.sourceFlag); src != "" {
				if cfg.SourceDir, err = filepath.Abs(src); err != nil {
					c.err = fmt.Errorf("resolve source dir: %w", err)
					return
				}
			}
		}
		c.cfg = cfg

		level := "info"
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		}
		c.log = logging.Default(level)
	})
	return c.err
}

func (c *commandContext) configValue() (*config.Config, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	return c.cfg, nil
}

// installer wires the full collaborator graph behind the lifecycle
// orchestrator. A fresh runner per call keeps command output attached to the
// current stdout and stderr.
func (c *commandContext) installer() (*installer.Installer, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	runner := execx.New(os.Stdout, os.Stderr)
	units := systemd.NewManager(runner, c.log, c.cfg.Daemon.Unit, c.id)
	builder := build.New(c.cfg, runner, c.log)
	stopper := terminate.New(runner, units, c.log, c.cfg.Daemon.Name)
	return installer.New(c.cfg, c.log, c.id, builder, units, stopper, prompt.Survey{}), nil
}

// requireTools fails fast when a required external binary is missing, before
// any operation starts mutating the system.
func requireTools() error {
	var missing []string
	for _, status := range deps.CheckBinaries(deps.Defaults()) {
		if !status.Available && !status.Optional {
			missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Description))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools:\n  %s", strings.Join(missing, "\n  "))
}
