// Package cli provides the limpiador command-line interface.
package cli

import (
	"log/slog"

	"github.com/JonMunkholm/limpiador/internal/logging"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "dev"

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:   "limpiador",
		Short: "Remove rows of list A whose value appears in list B",
		Long: `limpiador reads two tables (CSV, TXT or Excel), removes every row of A
whose chosen column matches a value in B's chosen column, and reports which
values were removed and how often.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Results go to stdout, logs to stderr.
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logLevel, logFormat))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newColumnsCommand())
	return rootCmd
}
