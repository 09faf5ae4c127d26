package installer

import (
	"context"
	"log/slog"
	"os"

	"cherryctl/internal/build"
	"cherryctl/internal/config"
	"cherryctl/internal/identity"
	"cherryctl/internal/prompt"
	"cherryctl/internal/systemd"
	"cherryctl/internal/terminate"
)

// Toolchain builds the daemon binary.
type Toolchain interface {
	Build(ctx context.Context) (build.Artifact, error)
}

// UnitManager reconciles the daemon's service unit.
type UnitManager interface {
	IsEnabled(ctx context.Context) bool
	CurrentState(ctx context.Context) systemd.State
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Reload(ctx context.Context)
	RestartIfEnabled(ctx context.Context) error
}

// DaemonStopper terminates running daemon instances before the binary is
// replaced.
type DaemonStopper interface {
	Stop(ctx context.Context) terminate.Outcome
}

// Installer is the lifecycle orchestrator.
type Installer struct {
	cfg     *config.Config
	log     *slog.Logger
	id      identity.Identity
	builder Toolchain
	units   UnitManager
	stopper DaemonStopper
	confirm prompt.Confirmer
	chown   func(path string, uid, gid int) error
}

// New wires an Installer from its collaborators.
func New(
	cfg *config.Config,
	log *slog.Logger,
	id identity.Identity,
	builder Toolchain,
	units UnitManager,
	stopper DaemonStopper,
	confirm prompt.Confirmer,
) *Installer {
	return &Installer{
		cfg:     cfg,
		log:     log,
		id:      id,
		builder: builder,
		units:   units,
		stopper: stopper,
		confirm: confirm,
		chown:   os.Chown,
	}
}
