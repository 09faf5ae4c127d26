package installer

import (
	"context"
	"fmt"
	"os"
)

// Install builds the daemon and installs the binary and unit file into the
// real user's home. Build, directory, and binary-copy failures abort the
// whole operation; a missing unit file and ownership fix-up failures are
// warnings only.
func (i *Installer) Install(ctx context.Context, noService bool) error {
	i.log.Info("Installing " + i.cfg.Daemon.Name)

	artifact, err := i.builder.Build(ctx)
	if err != nil {
		return err
	}

	i.log.Info("Creating directories...")
	if err := i.ensureDirs(); err != nil {
		return err
	}

	// The running instance holds the old binary open; get it out of the
	// way before overwriting.
	i.log.Info("Stopping existing " + i.cfg.Daemon.Name + " processes...")
	outcome := i.stopper.Stop(ctx)
	i.log.Debug("termination outcome", "outcome", outcome.String())

	i.log.Info("Installing " + i.cfg.BinaryPath() + "...")
	if err := copyFile(artifact.Path, i.cfg.BinaryPath(), 0o755); err != nil {
		return fmt.Errorf("install binary: %w", err)
	}

	unitInstalled := false
	if _, err := os.Stat(i.cfg.UnitSourcePath()); err == nil {
		i.log.Info("Installing systemd service...")
		if err := copyFile(i.cfg.UnitSourcePath(), i.cfg.UnitPath(), 0o644); err != nil {
			return fmt.Errorf("install unit file: %w", err)
		}
		unitInstalled = true
		i.units.Reload(ctx)
	} else {
		i.log.Warn("Systemd service file not found in source", "path", i.cfg.UnitSourcePath())
	}

	i.fixOwnership(i.cfg.BinaryPath(), i.cfg.UnitPath())

	i.log.Info("Installation complete")
	i.log.Info("Binary:  " + i.cfg.BinaryPath())
	i.log.Info("Config:  " + i.cfg.ConfigFilePath())

	if noService || !unitInstalled {
		return nil
	}
	return i.offerService(ctx)
}

// offerService prompts to enable the freshly installed unit, or restarts it
// when the operator already enabled it on a previous install. Service-manager
// failures here are reported but do not undo a completed install.
func (i *Installer) offerService(ctx context.Context) error {
	if i.units.IsEnabled(ctx) {
		if err := i.units.RestartIfEnabled(ctx); err != nil {
			i.log.Warn("Failed to restart service", "error", err.Error())
		}
		return nil
	}

	yes, err := i.confirm.Confirm("Enable "+i.cfg.Daemon.Unit+"?", true)
	if err != nil || !yes {
		return nil
	}
	if err := i.units.Enable(ctx); err != nil {
		i.log.Error("Failed to enable service: " + err.Error())
	}
	return nil
}
