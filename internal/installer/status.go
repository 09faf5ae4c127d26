package installer

import (
	"context"
	"os"
)

// Report is a read-only snapshot of the installation.
type Report struct {
	BinaryPath      string
	BinaryInstalled bool
	BinarySize      int64

	UnitPath      string
	UnitInstalled bool

	ConfigPath   string
	ConfigExists bool

	// ServiceEnabled and ServiceActive are only meaningful when
	// UnitInstalled is true; without a unit file there is no service to
	// ask about.
	ServiceEnabled bool
	ServiceActive  bool
}

// Installed reports overall installation state, defined solely by binary
// presence.
func (r Report) Installed() bool {
	return r.BinaryInstalled
}

// Status collects the current installation state. Service state is queried
// live from the service manager, never cached.
func (i *Installer) Status(ctx context.Context) Report {
	report := Report{
		BinaryPath: i.cfg.BinaryPath(),
		UnitPath:   i.cfg.UnitPath(),
		ConfigPath: i.cfg.ConfigFilePath(),
	}

	if info, err := os.Stat(report.BinaryPath); err == nil {
		report.BinaryInstalled = true
		report.BinarySize = info.Size()
	}
	if _, err := os.Stat(report.UnitPath); err == nil {
		report.UnitInstalled = true
	}
	if _, err := os.Stat(report.ConfigPath); err == nil {
		report.ConfigExists = true
	}

	if report.UnitInstalled {
		state := i.units.CurrentState(ctx)
		report.ServiceEnabled = state.Enabled
		report.ServiceActive = state.Active
	}

	return report
}
