package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizlr",
	Short: "Adaptive quiz engine",
	Long:  "Quizlr is an embeddable quiz engine with typed questions, guarded sessions, and LLM-assisted grading.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZLR_DB env var)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger writes console-formatted events to stderr, keeping stdout free
// for command output.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
