// Package main provides the velo CLI: a terminal demo that hosts the sheet
// engine end to end, with drag recognition driven by mouse input and the
// frame loop pumping the animation tickers.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-velo/velo/pkg/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "velo",
	Short: "velo - draggable bottom-sheet engine demo",
	Long: `velo hosts the bottom-sheet interaction engine in your terminal.

Drag the sheet with the mouse, fling it to snap between states, pull it
down to dismiss. Keys: o open, e expand, c collapse, t toggle reaction,
a add reaction, enter continue, esc close, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zap.NewNop()
		if verbose {
			cfg := zap.NewDevelopmentConfig()
			// The TUI owns the terminal; logs go to a file.
			cfg.OutputPaths = []string{"velo-demo.log"}
			cfg.ErrorOutputPaths = []string{"velo-demo.log"}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			logger = l
			defer logger.Sync()
		}

		resolved := resolveConfig(logger)

		p := tea.NewProgram(newDemoModel(resolved, logger),
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("demo failed: %w", err)
		}
		return nil
	},
}

// resolveConfig reads velo.yaml from the enclosing module if there is one.
// Running outside a module just means defaults.
func resolveConfig(logger *zap.Logger) *config.Resolved {
	root, err := config.FindProjectRoot()
	if err == nil {
		if resolved, err := config.Resolve(root); err == nil {
			return resolved
		} else {
			logger.Warn("config resolution failed, using defaults", zap.Error(err))
		}
	}
	return &config.Resolved{AppName: "velo", Accent: "205", Backdrop: "236"}
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug logs to velo-demo.log")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
