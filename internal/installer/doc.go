// Package installer sequences the lifecycle operations for the cherrypie
// daemon: install, uninstall, status, enable, disable, and update.
//
// Each handler runs to completion in one invocation; there is no state
// carried between runs beyond what lives on the filesystem and in the
// service manager's registry. Handlers are fail-fast on build, directory,
// and binary-copy errors, and best-effort on everything that should not
// block an operator (ownership fix-up, unit file absence, disable during
// uninstall, a daemon that survives termination).
package installer
