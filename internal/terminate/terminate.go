// Package terminate drives a running daemon instance through an escalating
// shutdown sequence before its binary is replaced.
//
// The escalation is an ordered list of {action, settle, probe} steps walked
// in a loop with early exit once the daemon is gone. A stuck daemon must not
// block an unattended update, but a healthy daemon that honors the manager
// stop or a graceful signal is never force-killed.
package terminate

import (
	"context"
	"log/slog"
	"time"

	"cherryctl/internal/execx"
)

// Outcome is the result of one escalation pass, ordered by severity.
type Outcome int

const (
	// StoppedViaManager covers both a unit stopped by the service manager
	// and the idempotent no-op when nothing was running to begin with.
	StoppedViaManager Outcome = iota
	StoppedViaSignal
	StoppedViaForceSignal
	// Survived is terminal for this call: escalation is exhausted and the
	// process is still alive. The caller proceeds and the operator is
	// warned; further retries are pointless.
	Survived
)

func (o Outcome) String() string {
	switch o {
	case StoppedViaManager:
		return "stopped via service manager"
	case StoppedViaSignal:
		return "stopped via SIGTERM"
	case StoppedViaForceSignal:
		return "stopped via SIGKILL"
	case Survived:
		return "survived termination"
	default:
		return "unknown"
	}
}

const (
	defaultStopTimeout = 5 * time.Second
	defaultSettle      = 500 * time.Millisecond
)

// UnitStopper is the service-manager side of step one.
type UnitStopper interface {
	Stop(ctx context.Context, timeout time.Duration) (timedOut bool, err error)
}

// Option configures the escalator.
type Option func(*Escalator)

// WithStopTimeout bounds the service-manager stop request.
func WithStopTimeout(d time.Duration) Option {
	return func(e *Escalator) { e.stopTimeout = d }
}

// WithSettleInterval sets the post-signal wait before each liveness probe.
func WithSettleInterval(d time.Duration) Option {
	return func(e *Escalator) { e.settle = d }
}

// Escalator terminates all processes matching the daemon's exact name.
type Escalator struct {
	runner      execx.Runner
	units       UnitStopper
	log         *slog.Logger
	process     string
	stopTimeout time.Duration
	settle      time.Duration
	sleep       func(time.Duration)
}

// New constructs an Escalator for the given exact process name.
func New(runner execx.Runner, units UnitStopper, log *slog.Logger, process string, opts ...Option) *Escalator {
	e := &Escalator{
		runner:      runner,
		units:       units,
		log:         log,
		process:     process,
		stopTimeout: defaultStopTimeout,
		settle:      defaultSettle,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type step struct {
	action  func(ctx context.Context)
	settle  time.Duration
	outcome Outcome
}

// Stop walks the escalation sequence: manager stop, SIGTERM, SIGKILL. It is
// unconditionally safe to call when nothing is running; the first probe
// reports the daemon gone and the pass ends at StoppedViaManager.
func (e *Escalator) Stop(ctx context.Context) Outcome {
	steps := []step{
		{action: e.managerStop, outcome: StoppedViaManager},
		{action: e.signal, settle: e.settle, outcome: StoppedViaSignal},
		{action: e.forceSignal, settle: e.settle, outcome: StoppedViaForceSignal},
	}

	for _, s := range steps {
		s.action(ctx)
		if s.settle > 0 {
			e.sleep(s.settle)
		}
		if !e.alive(ctx) {
			return s.outcome
		}
	}

	e.log.Warn("Daemon survived SIGKILL (zombie?)", "process", e.process)
	return Survived
}

func (e *Escalator) managerStop(ctx context.Context) {
	timedOut, err := e.units.Stop(ctx, e.stopTimeout)
	if err != nil {
		e.log.Debug("service manager stop failed", "error", err.Error())
		return
	}
	if timedOut {
		e.log.Warn("systemctl stop timed out, escalating...")
	}
}

func (e *Escalator) signal(ctx context.Context) {
	_, _ = e.runner.RunCapture(ctx, []string{"pkill", "-x", e.process}, "", 0)
}

func (e *Escalator) forceSignal(ctx context.Context) {
	e.log.Warn("Daemon still alive after SIGTERM, sending SIGKILL...")
	_, _ = e.runner.RunCapture(ctx, []string{"pkill", "-9", "-x", e.process}, "", 0)
}

// alive probes the process table for the daemon's exact name.
func (e *Escalator) alive(ctx context.Context) bool {
	result, err := e.runner.RunCapture(ctx, []string{"pgrep", "-x", e.process}, "", 0)
	return err == nil && result.ExitCode == 0
}
