// Package config resolves the installer's target paths and daemon identity.
//
// Defaults place everything under the real invoking user's home (binary in
// ~/.local/bin, daemon config in ~/.config/cherrypie, unit file in the user
// systemd directory) with build output isolated to a scratch directory
// outside the source tree. An optional TOML file overrides any of these.
// The Config value is built once at process entry and passed explicitly into
// every component, so path resolution stays independently testable.
package config
