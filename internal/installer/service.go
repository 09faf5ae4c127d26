package installer

import (
	"context"
	"fmt"
	"os"
)

// Enable enables-and-starts the unit. It refuses with guidance when the unit
// file has not been installed yet instead of letting systemctl fail
// obscurely.
func (i *Installer) Enable(ctx context.Context) error {
	if _, err := os.Stat(i.cfg.UnitPath()); err != nil {
		return fmt.Errorf("service file not installed, run 'cherryctl install' first")
	}
	return i.units.Enable(ctx)
}

// Disable disables-and-stops the unit.
func (i *Installer) Disable(ctx context.Context) error {
	return i.units.Disable(ctx)
}
