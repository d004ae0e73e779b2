package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	command := NewReportAPICommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewReportAPICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report-api [flags] [options]",
		Short: "report-api runs the voicemed report service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(runCmd)
	cmd.AddCommand(migrateCmd)

	return cmd
}
