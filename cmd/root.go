// Package cmd implements the huntboard CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🧭"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "huntboard",
	Short: logo + " huntboard — AI core for your job search",
	Long:  logo + " huntboard — the agent core behind the huntboard job-application tracker",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(statusCmd)
}
