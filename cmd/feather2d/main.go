// feather2d runs the narrow-phase solver on scene files from the command line.
//
// Usage:
//
//	feather2d check <scene>    - Collide the first two bodies of a scene
//	feather2d sweep            - Check the solver against the circle-circle closed form
//	feather2d render <scene>   - Draw a scene as text
//
// Global flags:
//
//	--config <path>      - Solver configuration (default: ~/.feather2d/solver.yaml)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--workers <n>        - Goroutines used for batches of pairs
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/akmonengine/feather2d/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagWorkers  int
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "feather2d",
	})
	// Loaded before every subcommand
	cfg config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "feather2d",
	Short: "feather2d - 2D convex collision queries",
	Long: `feather2d answers collision queries between convex 2D shapes described
in YAML scene files: whether they overlap, and the normal and depth separating them.

Available commands:
  check    - Collide the first two bodies of a scene
  sweep    - Compare the solver with the circle-circle closed form
  render   - Draw a scene as text

Examples:
  feather2d check scene.yaml --render
  feather2d sweep --steps 720
  feather2d render scene.yaml --width 80 --height 40`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to solver configuration (default: ~/.feather2d/solver.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Goroutines for batches of pairs (0 = configuration value)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(renderCmd)
}

// setup configures the logger and loads the solver configuration.
func setup(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagWorkers < 0 {
		return fmt.Errorf("%w, got %d", config.ErrInvalidWorkers, flagWorkers)
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}

	logger.Debug("configuration loaded",
		"max_iterations", cfg.Solver.MaxIterations,
		"tolerance", cfg.Solver.Tolerance,
		"workers", cfg.Workers,
	)
	return nil
}
