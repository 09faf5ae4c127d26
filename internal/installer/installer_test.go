package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cherryctl/internal/build"
	"cherryctl/internal/config"
	"cherryctl/internal/identity"
	"cherryctl/internal/prompt"
	"cherryctl/internal/systemd"
	"cherryctl/internal/terminate"
	"cherryctl/internal/testsupport"
)

type fakeBuilder struct {
	cfg    *config.Config
	builds int
	fail   error
}

func (b *fakeBuilder) Build(context.Context) (build.Artifact, error) {
	b.builds++
	if b.fail != nil {
		return build.Artifact{}, b.fail
	}
	path := b.cfg.ArtifactPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return build.Artifact{}, err
	}
	if err := os.WriteFile(path, []byte("daemon binary"), 0o644); err != nil {
		return build.Artifact{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return build.Artifact{}, err
	}
	return build.Artifact{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

type fakeUnits struct {
	enabled bool
	active  bool

	enableErr  error
	disableErr error

	enables    int
	disables   int
	reloads    int
	restarts   int
	stateReads int
}

func (u *fakeUnits) IsEnabled(context.Context) bool { return u.enabled }

func (u *fakeUnits) CurrentState(context.Context) systemd.State {
	u.stateReads++
	return systemd.State{Enabled: u.enabled, Active: u.active}
}

func (u *fakeUnits) Enable(context.Context) error {
	u.enables++
	if u.enableErr != nil {
		return u.enableErr
	}
	u.enabled = true
	u.active = true
	return nil
}

func (u *fakeUnits) Disable(context.Context) error {
	u.disables++
	if u.disableErr != nil {
		return u.disableErr
	}
	u.enabled = false
	u.active = false
	return nil
}

func (u *fakeUnits) Reload(context.Context) { u.reloads++ }

func (u *fakeUnits) RestartIfEnabled(context.Context) error {
	u.restarts++
	if u.enabled {
		u.active = true
	}
	return nil
}

type fakeStopper struct {
	calls   int
	outcome terminate.Outcome
	onStop  func()
}

func (s *fakeStopper) Stop(context.Context) terminate.Outcome {
	s.calls++
	if s.onStop != nil {
		s.onStop()
	}
	return s.outcome
}

type confirmRecorder struct {
	asked  int
	answer bool
	err    error
}

func (c *confirmRecorder) Confirm(string, bool) (bool, error) {
	c.asked++
	return c.answer, c.err
}

func identityAlice() identity.Identity {
	return identity.Identity{Username: "alice", UID: 1000, GID: 1000}
}

type harness struct {
	cfg     *config.Config
	inst    *Installer
	builder *fakeBuilder
	units   *fakeUnits
	stopper *fakeStopper
	confirm *confirmRecorder
	chowned []string
}

func newHarness(t *testing.T, id identity.Identity) *harness {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.SourceDir, 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}

	h := &harness{
		cfg:     cfg,
		builder: &fakeBuilder{cfg: cfg},
		units:   &fakeUnits{},
		stopper: &fakeStopper{},
		confirm: &confirmRecorder{answer: true},
	}
	h.inst = New(cfg, testsupport.NewLogger(t), id, h.builder, h.units, h.stopper, h.confirm)
	h.inst.chown = func(path string, uid, gid int) error {
		h.chowned = append(h.chowned, path)
		return nil
	}
	return h
}

func (h *harness) writeUnitSource(t *testing.T) {
	t.Helper()
	if err := os.WriteFile(h.cfg.UnitSourcePath(), []byte("[Unit]\nDescription=cherrypie\n"), 0o644); err != nil {
		t.Fatalf("write unit source: %v", err)
	}
}

func (h *harness) writeInstalledBinary(t *testing.T, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(h.cfg.Paths.BinDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	path := h.cfg.BinaryPath()
	if err := os.WriteFile(path, []byte("old binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func (h *harness) writeSourceFile(t *testing.T, rel string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(h.cfg.SourceDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("fn main() {}"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestInstallFreshSystemEnablesOnConfirm(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.writeUnitSource(t)

	if err := h.inst.Install(context.Background(), false); err != nil {
		t.Fatalf("install: %v", err)
	}

	info, err := os.Stat(h.cfg.BinaryPath())
	if err != nil {
		t.Fatalf("binary not installed: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected executable permission, got %v", info.Mode().Perm())
	}
	if _, err := os.Stat(h.cfg.UnitPath()); err != nil {
		t.Fatalf("unit file not installed: %v", err)
	}
	if h.units.reloads == 0 {
		t.Fatal("expected daemon-reload after unit install")
	}
	if h.confirm.asked != 1 {
		t.Fatalf("expected one prompt, got %d", h.confirm.asked)
	}
	if !h.units.enabled || !h.units.active {
		t.Fatal("expected enabled, active service after confirmed install")
	}
}

func TestInstallConfirmDeclinedLeavesServiceDisabled(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.writeUnitSource(t)
	h.confirm.answer = false

	if err := h.inst.Install(context.Background(), false); err != nil {
		t.Fatalf("install: %v", err)
	}
	if h.units.enabled {
		t.Fatal("declined prompt must not enable the service")
	}
}

func TestInstallNonInteractiveLeavesServiceDisabled(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.writeUnitSource(t)
	// The real prompt with stdin attached to the test harness pipe: nobody
	// is there to answer, so the service must stay disabled.
	h.inst.confirm = prompt.Survey{}

	if err := h.inst.Install(context.Background(), false); err != nil {
		t.Fatalf("install: %v", err)
	}
	if h.units.enabled || h.units.enables != 0 {
		t.Fatal("scripted install must not enable the service")
	}
}

func TestInstallNoServiceSkipsPrompt(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.writeUnitSource(t)

	if err := h.inst.Install(context.Background(), true); err != nil {
		t.Fatalf("install: %v", err)
	}
	if h.confirm.asked != 0 {
		t.Fatal("--no-service install must not prompt")
	}
	if h.units.enabled {
		t.Fatal("--no-service install must not enable the service")
	}
}

func TestInstallAlreadyEnabledRestartsInsteadOfPrompting(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.writeUnitSource(t)
	h.units.enabled = true

	if err := h.inst.Install(context.Background(), false); err != nil {
		t.Fatalf("install: %v", err)
	}
	if h.confirm.asked != 0 {
		t.Fatal("already-enabled unit must not re-prompt")
	}
	if h.units.restarts != 1 {
		t.Fatalf("expected one restart, got %d", h.units.restarts)
	}
}

func TestInstallWithoutUnitFileSucceedsAndSkipsPrompt(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})

	if err := h.inst.Install(context.Background(), false); err != nil {
		t.Fatalf("install without unit file must succeed: %v", err)
	}
	if _, err := os.Stat(h.cfg.BinaryPath()); err != nil {
		t.Fatalf("binary not installed: %v", err)
	}
	if h.confirm.asked != 0 {
		t.Fatal("no unit installed, nothing to offer")
	}
}

func TestInstallBuildFailureAborts(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.builder.fail = errors.New("build failed with exit code 101")

	if err := h.inst.Install(context.Background(), false); err == nil {
		t.Fatal("expected install to fail")
	}
	if _, err := os.Stat(h.cfg.BinaryPath()); err == nil {
		t.Fatal("failed install must not leave a binary behind")
	}
	if h.stopper.calls != 0 {
		t.Fatal("failed build must not touch the running daemon")
	}
}

func TestInstallStopsDaemonBeforeReplacingBinary(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.writeInstalledBinary(t, time.Now().Add(-time.Hour))

	var contentAtStop []byte
	h.stopper.onStop = func() {
		contentAtStop, _ = os.ReadFile(h.cfg.BinaryPath())
	}

	if err := h.inst.Install(context.Background(), true); err != nil {
		t.Fatalf("install: %v", err)
	}
	if string(contentAtStop) != "old binary" {
		t.Fatalf("daemon must be stopped before the binary is replaced, saw %q", contentAtStop)
	}
	if h.stopper.calls != 1 {
		t.Fatalf("expected one termination pass, got %d", h.stopper.calls)
	}
}

func TestInstallSurvivedDaemonStillProceeds(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})
	h.stopper.outcome = terminate.Survived

	if err := h.inst.Install(context.Background(), true); err != nil {
		t.Fatalf("survived daemon must not block install: %v", err)
	}
	if _, err := os.Stat(h.cfg.BinaryPath()); err != nil {
		t.Fatalf("binary not installed: %v", err)
	}
}

func TestInstallElevatedFixesOwnership(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice", UID: 1000, GID: 1000, Elevated: true})
	h.writeUnitSource(t)

	if err := h.inst.Install(context.Background(), true); err != nil {
		t.Fatalf("install: %v", err)
	}
	if len(h.chowned) != 2 {
		t.Fatalf("expected binary and unit chowned, got %v", h.chowned)
	}
}

func TestInstallOwnershipFailureIsWarningOnly(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice", UID: 1000, GID: 1000, Elevated: true})
	h.inst.chown = func(string, int, int) error { return errors.New("operation not permitted") }

	if err := h.inst.Install(context.Background(), true); err != nil {
		t.Fatalf("ownership fix failure must not abort install: %v", err)
	}
}

func TestInstallUnelevatedNeverChowns(t *testing.T) {
	h := newHarness(t, identity.Identity{Username: "alice"})

	if err := h.inst.Install(context.Background(), true); err != nil {
		t.Fatalf("install: %v", err)
	}
	if len(h.chowned) != 0 {
		t.Fatalf("unexpected chown calls: %v", h.chowned)
	}
}
