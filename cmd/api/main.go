package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Child Care Tracker API
// @version 1.0
// @description Perfiles de niños, registro diario de cuidado, cuidadores compartidos y calendario de vacunas.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "child-care-tracker",
		Short:         "Child care tracker API server and tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}
