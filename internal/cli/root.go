// Package cli implements the Meu Mundo command-line interface using
// Cobra. Subcommands map onto the engine's inbound operations (complete,
// relax, work, profile, badges) plus the API server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meumundo",
	Short: "Meu Mundo — progression engine for the timeline diary",
	Long: `Meu Mundo is the gamification engine behind the timeline diary.
Completed tasks earn coins, experience and levels; health and stress
rise and fall with work, study and rest — and reaching zero health
resets the whole world.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
