package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "apexad",
	Short:         "apexad differentiates closed-form scalar formulas",
	Long:          "apexad parses a formula and lowers it into a reverse-mode autodiff tape, then evaluates its value and gradient at a point.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline stage at debug level")
	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(parseCmd())
}
