package installer

import (
	"fmt"
	"io"
	"os"
)

func (i *Installer) ensureDirs() error {
	for _, dir := range []string{i.cfg.Paths.BinDir, i.cfg.Paths.ConfigDir, i.cfg.Paths.UnitDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// fixOwnership hands installed files back to the real user after an elevated
// install. Failure is a warning, never fatal: the files are in place and the
// operator can chown by hand.
func (i *Installer) fixOwnership(paths ...string) {
	if !i.id.Elevated {
		return
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := i.chown(path, i.id.UID, i.id.GID); err != nil {
			i.log.Warn("Failed to fix ownership", "path", path, "error", err.Error())
		}
	}
}

// copyFile replaces dst with src's contents, permissions set to perm and the
// source modification time preserved so staleness checks keep working.
func copyFile(src, dst string, perm os.FileMode) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// O_CREATE perm is masked by umask and skipped entirely when dst exists.
	if err := os.Chmod(dst, perm); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
