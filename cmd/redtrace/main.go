package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"redtrace/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "redtrace",
	Short: "Export analyzed HTTP transactions as HAR archives",
	Long: `redtrace turns analyzed HTTP transaction snapshots into HAR 1.1 documents
annotated with the analyzer's notes (the _red_messages extension)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyColorFlag(cmd)
	},
}

// main registers subcommands and persistent flags, then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Current()

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to redtrace.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file to load before reading REDTRACE_* variables")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug), overrides config")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
