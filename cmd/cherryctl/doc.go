// Package main hosts the cherryctl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into the
// installer's lifecycle operations: building and installing the cherrypie
// daemon, managing its systemd user unit, staleness-driven updates, and
// status reporting. It centralizes identity resolution, configuration
// loading, and logger setup so subcommands can focus on user experience
// instead of wiring.
package main
