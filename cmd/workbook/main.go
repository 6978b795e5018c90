package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"workbook/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "workbook",
	Short: "Turn rustc output into a problem list and editor markers",
	Long: `workbook parses the compiler stderr captured from a sandboxed Rust run into
structured diagnostics, renders them as a problem list and projects them onto
editor marker coordinates`,
	SilenceUsage: true,
}

// errProblemsFound signals that diagnostics were printed and at least one is an
// error. main exits with status 1 without printing it again.
var errProblemsFound = errors.New("problems found")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(markersCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to workbook.toml (default: search upwards from cwd)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error|disabled)")

	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errProblemsFound) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
