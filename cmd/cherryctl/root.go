package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var sourceFlag string
	var verboseFlag bool

	cctx := newCommandContext(&configFlag, &sourceFlag, &verboseFlag)

	installCmd := newInstallCommand(cctx)

	rootCmd := &cobra.Command{
		Use:           "cherryctl",
		Short:         "Build, install, and manage the cherrypie daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bare invocation installs, matching the most common workflow of
		// running the tool from a source checkout.
		RunE: installCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Installer configuration file path")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "Daemon source tree (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().AddFlagSet(installCmd.Flags())

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(newUninstallCommand(cctx))
	rootCmd.AddCommand(newStatusCommand(cctx))
	rootCmd.AddCommand(newEnableCommand(cctx))
	rootCmd.AddCommand(newDisableCommand(cctx))
	rootCmd.AddCommand(newUpdateCommand(cctx))

	return rootCmd
}
