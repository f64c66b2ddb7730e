package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/fable/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "fable",
	Short: "Fable is a story-based workflow composition engine",
	Long:  `Fable lets you declare workflows as stories: named sequences of steps sharing a schema-validated state. This CLI inspects and validates declarative story blueprints.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// newLogger builds the CLI logger honoring the --verbose flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}
