package installer

import (
	"context"
	"fmt"
	"os"
)

// Uninstall removes the installed binary and unit file. The configuration
// directory is deliberately preserved so a reinstall keeps user settings.
// Running on a clean system is success: there is simply nothing to do.
func (i *Installer) Uninstall(ctx context.Context) error {
	i.log.Info("Uninstalling " + i.cfg.Daemon.Name)

	if i.units.IsEnabled(ctx) {
		if err := i.units.Disable(ctx); err != nil {
			i.log.Warn("Failed to disable service", "error", err.Error())
		}
	}

	removed := false
	for _, path := range []string{i.cfg.BinaryPath(), i.cfg.UnitPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		i.log.Info("Removing " + path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		removed = true
	}

	if !removed {
		i.log.Warn("No installed files found")
	} else {
		i.log.Info("Uninstall complete")
	}

	if _, err := os.Stat(i.cfg.Paths.ConfigDir); err == nil {
		i.log.Info("Config directory preserved: " + i.cfg.Paths.ConfigDir)
	}
	return nil
}
