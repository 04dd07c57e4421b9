// Command seatmap generates meeting seating charts from the command line.
//
//	seatmap generate -i meetperson.xlsx -w 10
//	seatmap layout -w 10
//	seatmap token --secret s3cret --ttl 60m
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "seatmap",
		Short:         "Assign meeting attendees to seats and export the chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				return nil
			}
			zc := zap.NewDevelopmentConfig()
			if !verbose {
				zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	root.AddCommand(newGenerateCmd(), newLayoutCmd(), newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
