package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallCommand(cctx *commandContext) *cobra.Command {
	var noService bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Build the daemon and install the binary and service unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTools(); err != nil {
				return err
			}
			inst, err := cctx.installer()
			if err != nil {
				return err
			}
			return inst.Install(cmd.Context(), noService)
		},
	}
	cmd.Flags().BoolVar(&noService, "no-service", false, "Skip the service enablement prompt")
	return cmd
}

func newUninstallCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the installed binary and service unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := cctx.installer()
			if err != nil {
				return err
			}
			return inst.Uninstall(cmd.Context())
		},
	}
}

func newEnableCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Enable and start the daemon's user unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := cctx.installer()
			if err != nil {
				return err
			}
			if err := inst.Enable(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Service enabled and started")
			return nil
		},
	}
}

func newDisableCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Disable and stop the daemon's user unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := cctx.installer()
			if err != nil {
				return err
			}
			if err := inst.Disable(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Service disabled and stopped")
			return nil
		},
	}
}

func newUpdateCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Rebuild and reinstall the binary when sources changed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTools(); err != nil {
				return err
			}
			inst, err := cctx.installer()
			if err != nil {
				return err
			}
			return inst.Update(cmd.Context())
		},
	}
}
