// Package systemd reconciles the daemon's user unit with desired state.
//
// State is never cached: the unit can be enabled, disabled, or crash outside
// this process's control, so every query goes back to systemctl. Under sudo,
// invocations are scoped to the real user's session via --machine so state is
// never read from or written to root's service manager.
package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cherryctl/internal/execx"
	"cherryctl/internal/identity"
)

// State is a point-in-time view of the unit's registration and runtime state.
type State struct {
	Enabled bool
	Active  bool
}

// Manager drives systemctl for a single unit.
type Manager struct {
	runner execx.Runner
	log    *slog.Logger
	unit   string
	base   []string
}

// NewManager binds a Manager to the unit, scoped to the given identity's
// user session.
func NewManager(runner execx.Runner, log *slog.Logger, unit string, id identity.Identity) *Manager {
	base := []string{"systemctl", "--user"}
	if id.Elevated {
		base = []string{"systemctl", fmt.Sprintf("--machine=%s@.host", id.Username), "--user"}
	}
	return &Manager{runner: runner, log: log, unit: unit, base: base}
}

func (m *Manager) command(args ...string) []string {
	return append(append([]string{}, m.base...), args...)
}

// IsEnabled reports whether the unit is enabled. Output is discarded; a zero
// exit code means enabled.
func (m *Manager) IsEnabled(ctx context.Context) bool {
	result, err := m.runner.RunCapture(ctx, m.command("is-enabled", m.unit), "", 0)
	return err == nil && result.ExitCode == 0
}

// IsActive reports whether the unit is currently running.
func (m *Manager) IsActive(ctx context.Context) bool {
	result, err := m.runner.RunCapture(ctx, m.command("is-active", m.unit), "", 0)
	return err == nil && result.ExitCode == 0
}

// CurrentState queries both flags.
func (m *Manager) CurrentState(ctx context.Context) State {
	return State{Enabled: m.IsEnabled(ctx), Active: m.IsActive(ctx)}
}

// Reload asks the manager to re-read unit definitions. Best-effort; a reload
// failure never blocks an install.
func (m *Manager) Reload(ctx context.Context) {
	result, err := m.runner.RunCapture(ctx, m.command("daemon-reload"), "", 0)
	if err != nil || result.ExitCode != 0 {
		m.log.Debug("daemon-reload failed", "unit", m.unit)
	}
}

// Enable reloads unit definitions and enables-and-starts the unit in one
// step. Idempotent: enabling an enabled unit succeeds.
func (m *Manager) Enable(ctx context.Context) error {
	m.log.Info("Enabling " + m.unit + "...")
	m.Reload(ctx)

	result, err := m.runner.RunCapture(ctx, m.command("enable", "--now", m.unit), "", 0)
	if err != nil {
		return fmt.Errorf("enable %s: %w", m.unit, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("enable %s: %s", m.unit, managerDiagnostic(result))
	}
	m.log.Info("Service enabled and started")
	return nil
}

// Disable disables-and-stops the unit in one step. Idempotent.
func (m *Manager) Disable(ctx context.Context) error {
	m.log.Info("Disabling " + m.unit + "...")

	result, err := m.runner.RunCapture(ctx, m.command("disable", "--now", m.unit), "", 0)
	if err != nil {
		return fmt.Errorf("disable %s: %w", m.unit, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("disable %s: %s", m.unit, managerDiagnostic(result))
	}
	m.log.Info("Service disabled and stopped")
	return nil
}

// Stop asks the manager to stop the unit, bounded by timeout. It reports
// whether the request timed out; a timeout is not an error, the caller
// escalates instead.
func (m *Manager) Stop(ctx context.Context, timeout time.Duration) (bool, error) {
	result, err := m.runner.RunCapture(ctx, m.command("stop", m.unit), "", timeout)
	if err != nil {
		return false, fmt.Errorf("stop %s: %w", m.unit, err)
	}
	return result.TimedOut, nil
}

// RestartIfEnabled starts the unit only when it is enabled. Used after
// replacing the binary: an update must not silently enable a service the
// operator chose not to enable, so the disabled case is a successful no-op.
func (m *Manager) RestartIfEnabled(ctx context.Context) error {
	if !m.IsEnabled(ctx) {
		return nil
	}
	m.log.Info("Starting service...")
	result, err := m.runner.RunCapture(ctx, m.command("start", m.unit), "", 0)
	if err != nil {
		return fmt.Errorf("start %s: %w", m.unit, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("start %s: %s", m.unit, managerDiagnostic(result))
	}
	return nil
}

// managerDiagnostic surfaces systemctl's own diagnostic text verbatim.
func managerDiagnostic(result execx.Result) string {
	if detail := strings.TrimSpace(result.Stderr); detail != "" {
		return detail
	}
	if detail := strings.TrimSpace(result.Stdout); detail != "" {
		return detail
	}
	return fmt.Sprintf("exit code %d", result.ExitCode)
}
