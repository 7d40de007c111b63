package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portal",
		Short:         "Staffing portal web front end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = version

	cmd.AddCommand(
		newServeCmd(),
		newTokenCmd(),
	)
	return cmd
}
