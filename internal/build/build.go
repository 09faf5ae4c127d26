// Package build drives the cargo build of the daemon binary.
//
// Build output is redirected to an isolated directory via CARGO_TARGET_DIR so
// repeated builds never write artifacts into the source tree.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"cherryctl/internal/config"
	"cherryctl/internal/execx"
)

// ErrToolchainMissing indicates the build toolchain is not on PATH.
var ErrToolchainMissing = errors.New("cargo not found")

// Artifact describes a successfully built daemon binary. It is only
// returned when the file exists on disk.
type Artifact struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Option configures the builder.
type Option func(*Builder)

// WithCargoBinary overrides the default cargo binary.
func WithCargoBinary(binary string) Option {
	return func(b *Builder) {
		if binary != "" {
			b.cargo = binary
		}
	}
}

// Builder runs release builds of the daemon.
type Builder struct {
	cfg      *config.Config
	runner   execx.Runner
	log      *slog.Logger
	cargo    string
	lookPath func(string) (string, error)
}

// New constructs a Builder.
func New(cfg *config.Config, runner execx.Runner, log *slog.Logger, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		runner:   runner,
		log:      log,
		cargo:    "cargo",
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build compiles the daemon in release mode and verifies the expected
// artifact exists afterwards. A zero cargo exit code without the artifact on
// disk is still a failure; that combination means a toolchain or version
// mismatch left the binary somewhere unexpected.
func (b *Builder) Build(ctx context.Context) (Artifact, error) {
	if _, err := b.lookPath(b.cargo); err != nil {
		return Artifact{}, fmt.Errorf("%w: install Rust from https://rustup.rs", ErrToolchainMissing)
	}

	b.log.Info("Building " + b.cfg.Daemon.Name)

	env := []string{"CARGO_TARGET_DIR=" + b.cfg.Paths.BuildDir}
	code, err := b.runner.Run(ctx, []string{b.cargo, "build", "--release"}, b.cfg.SourceDir, env)
	if err != nil {
		return Artifact{}, fmt.Errorf("run cargo: %w", err)
	}
	if code != 0 {
		return Artifact{}, fmt.Errorf("build failed with exit code %d", code)
	}

	info, err := os.Stat(b.cfg.ArtifactPath())
	if err != nil {
		return Artifact{}, fmt.Errorf("build completed but binary not found at %s", b.cfg.ArtifactPath())
	}

	artifact := Artifact{Path: b.cfg.ArtifactPath(), Size: info.Size(), ModTime: info.ModTime()}
	b.log.Info("Built "+artifact.Path, "size_kb", artifact.Size/1024)
	return artifact, nil
}
