package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"cherryctl/internal/config"
	"cherryctl/internal/deps"
	"cherryctl/internal/installer"
)

func newStatusCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show installation and service state",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := cctx.installer()
			if err != nil {
				return err
			}
			cfg, err := cctx.configValue()
			if err != nil {
				return err
			}
			report := inst.Status(cmd.Context())
			writeStatus(cmd.OutOrStdout(), cfg, report)
			if !report.Installed() {
				return fmt.Errorf("%s is not installed", cfg.Daemon.Name)
			}
			return nil
		},
	}
}

func writeStatus(w io.Writer, cfg *config.Config, report installer.Report) {
	colorize := shouldColorize(w)

	for _, line := range renderSectionHeader(cfg.Daemon.Name+" installation", colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, binaryLine(report, colorize))
	fmt.Fprintln(w, unitLine(report, colorize))
	fmt.Fprintln(w, configLine(report, colorize))
	if report.UnitInstalled {
		fmt.Fprintln(w, yesNoLine("Service enabled", report.ServiceEnabled, colorize))
		fmt.Fprintln(w, yesNoLine("Service active", report.ServiceActive, colorize))
	}
	fmt.Fprintln(w, overallLine(report, colorize))

	fmt.Fprintln(w)
	for _, line := range renderSectionHeader("environment", colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Tool", "Status", "Notes"},
		toolRows(deps.CheckBinaries(deps.Defaults())),
	))
	for _, line := range writabilityLines(cfg, colorize) {
		fmt.Fprintln(w, line)
	}
}

func binaryLine(report installer.Report, colorize bool) string {
	if !report.BinaryInstalled {
		return renderStatusLine("Binary", statusError, "not installed", colorize)
	}
	detail := fmt.Sprintf("%s (%d KB)", report.BinaryPath, report.BinarySize/1024)
	return renderStatusLine("Binary", statusOK, detail, colorize)
}

func unitLine(report installer.Report, colorize bool) string {
	if !report.UnitInstalled {
		return renderStatusLine("Service file", statusWarn, "not installed", colorize)
	}
	return renderStatusLine("Service file", statusOK, report.UnitPath, colorize)
}

func configLine(report installer.Report, colorize bool) string {
	if !report.ConfigExists {
		return renderStatusLine("Config", statusInfo, "not created yet", colorize)
	}
	return renderStatusLine("Config", statusOK, report.ConfigPath, colorize)
}

func yesNoLine(label string, value bool, colorize bool) string {
	if value {
		return renderStatusLine(label, statusOK, "yes", colorize)
	}
	return renderStatusLine(label, statusWarn, "no", colorize)
}

func overallLine(report installer.Report, colorize bool) string {
	if report.Installed() {
		return renderStatusLine("Overall", statusOK, "INSTALLED", colorize)
	}
	return renderStatusLine("Overall", statusError, "NOT INSTALLED", colorize)
}

func toolRows(statuses []deps.Status) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "missing"
		if status.Available {
			state = "found"
		}
		note := status.Description
		if !status.Available && status.Detail != "" {
			note = status.Detail
		}
		rows = append(rows, []string{status.Name, state, note})
	}
	return rows
}

// writabilityLines reports whether the install targets can actually be
// written, probing the nearest existing ancestor for directories that do not
// exist yet.
func writabilityLines(cfg *config.Config, colorize bool) []string {
	targets := []struct {
		label string
		path  string
	}{
		{"Bin dir", cfg.Paths.BinDir},
		{"Unit dir", cfg.Paths.UnitDir},
		{"Build dir", cfg.Paths.BuildDir},
	}
	lines := make([]string, 0, len(targets))
	for _, target := range targets {
		if dirWritable(target.path) {
			lines = append(lines, renderStatusLine(target.label, statusOK, "writable: "+target.path, colorize))
		} else {
			lines = append(lines, renderStatusLine(target.label, statusError, "not writable: "+target.path, colorize))
		}
	}
	return lines
}

func dirWritable(path string) bool {
	for {
		err := unix.Access(path, unix.W_OK|unix.X_OK)
		switch {
		case err == nil:
			return true
		case err == unix.ENOENT:
			parent := filepath.Dir(path)
			if parent == path {
				return false
			}
			path = parent
		default:
			return false
		}
	}
}
