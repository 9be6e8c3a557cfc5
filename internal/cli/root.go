// Package cli implements atsctl, a local front end to the resume analysis pipeline.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "atsctl",
	Short:         "Score a resume against a job description",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
