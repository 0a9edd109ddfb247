// Package cli is the brand_server command line: the API server plus offline
// palette, reconcile and export tools.
package cli

import (
	"os"

	"brand_server/pkg/logger"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brand_server",
		Short: "Brand identity generator",
		Long: `brand_server suggests fonts and colors for a company, generates logo
candidates from several providers at once and retargets them onto the
selected font and color.

Run "brand_server serve" for the HTTP API. The other commands work offline.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Offline commands write artifacts to stdout; keep logs off it.
			if cmd.Name() != "serve" {
				logger.Init(logger.Config{Level: logger.LevelWarn, Output: os.Stderr})
			}
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPaletteCmd())
	rootCmd.AddCommand(newReconcileCmd())
	rootCmd.AddCommand(newExportCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
