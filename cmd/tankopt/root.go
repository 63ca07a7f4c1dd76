package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/config"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/engine"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/logging"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/metrics"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/tank"
)

var (
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *logging.Logger
	zlog   *zap.Logger
	eng    *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "tankopt",
	Short: "Cylindrical tank design cost optimization",
	Long: `tankopt minimizes the fabrication cost of a cylindrical tank subject
to volume and dimension bounds, using a penalized objective and a choice
of descent methods (steepest descent, Newton, DFP quasi-Newton).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if logFormat != "" {
			cfg.Logging.Format = logFormat
		}

		logger, err = logging.NewLogger(&logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		zlog = logging.NewZapLogger(logger)

		eng = engine.New(tank.DefaultParameters(), cfg, logger, metrics.New())
		zlog.Debug("engine ready",
			zap.String("env", cfg.Environment),
			zap.Float64("default_tolerance", cfg.Solver.Tolerance),
			zap.Int("default_max_iterations", cfg.Solver.MaxIterations),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, text)")
}
