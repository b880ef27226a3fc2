package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hx/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "hx",
		Short: "Reference-cell hooks over a Go component host",
		Long: `hx runs the demo application built on the hx adapter.

Components read mutable reference cells and re-render exactly when
those cells change. The demo exercises every wrapper:

  • a clock cell ticked from outside the tree
  • a click counter and a render counter
  • a throttled board and a deferred stats panel
  • a failing widget behind an error boundary`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", ".", "Directory containing hx.yaml or hx.toml")

	rootCmd.AddCommand(
		renderCmd(&configDir),
		serveCmd(&configDir),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
