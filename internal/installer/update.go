package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cherryctl/internal/freshness"
)

// Update rebuilds and reinstalls the binary when the source tree is newer
// than the installed artifact. Unlike Install it never prompts, so it is
// safe to run unattended; a unit the operator left disabled stays disabled.
func (i *Installer) Update(ctx context.Context) error {
	i.log.Info("Checking for updates")

	if info, err := os.Stat(i.cfg.BinaryPath()); err == nil {
		decision, err := freshness.Scan(i.cfg.SourceDir, i.cfg.Update.Patterns, info.ModTime())
		if err != nil {
			return fmt.Errorf("scan sources: %w", err)
		}
		if !decision.Required {
			i.log.Info("Already up to date")
			return nil
		}
		for _, trigger := range decision.Triggers {
			i.log.Info("Source updated: " + filepath.Base(trigger))
		}
	} else {
		i.log.Info("Binary not installed")
	}

	artifact, err := i.builder.Build(ctx)
	if err != nil {
		return err
	}

	i.log.Info("Stopping existing " + i.cfg.Daemon.Name + " processes...")
	outcome := i.stopper.Stop(ctx)
	i.log.Debug("termination outcome", "outcome", outcome.String())

	i.log.Info("Installing update...")
	if err := os.MkdirAll(i.cfg.Paths.BinDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", i.cfg.Paths.BinDir, err)
	}
	if err := copyFile(artifact.Path, i.cfg.BinaryPath(), 0o755); err != nil {
		return fmt.Errorf("install binary: %w", err)
	}

	i.fixOwnership(i.cfg.BinaryPath())

	if err := i.units.RestartIfEnabled(ctx); err != nil {
		i.log.Warn("Failed to restart service", "error", err.Error())
	}

	i.log.Info("Update complete")
	return nil
}
