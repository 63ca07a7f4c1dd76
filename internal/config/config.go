// Package config loads engine defaults from the environment.
package config

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v10"
)

// Config holds the process-wide defaults of the tank design engine.
// Values are read once at startup; CLI flags may override the solver
// defaults per invocation.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	Logging     struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		Tolerance     float64 `env:"SOLVER_TOLERANCE" envDefault:"1e-6"`
		MaxIterations int     `env:"SOLVER_MAX_ITERATIONS" envDefault:"200"`
	}
	Grid struct {
		Resolution  int     `env:"GRID_RESOLUTION" envDefault:"50"`
		DiameterMin float64 `env:"GRID_DIAMETER_MIN" envDefault:"0.1"`
		DiameterMax float64 `env:"GRID_DIAMETER_MAX" envDefault:"1.2"`
		LengthMin   float64 `env:"GRID_LENGTH_MIN" envDefault:"0.1"`
		LengthMax   float64 `env:"GRID_LENGTH_MAX" envDefault:"2.2"`
		WorkerCount int     `env:"GRID_WORKER_COUNT" envDefault:"0"`
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development runs default to verbose logs unless set explicitly.
	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	if cfg.Grid.Resolution <= 0 {
		return nil, fmt.Errorf("grid resolution must be positive, got %d", cfg.Grid.Resolution)
	}
	if cfg.Grid.DiameterMax <= cfg.Grid.DiameterMin || cfg.Grid.LengthMax <= cfg.Grid.LengthMin {
		return nil, fmt.Errorf("grid window is empty: D [%v, %v], L [%v, %v]",
			cfg.Grid.DiameterMin, cfg.Grid.DiameterMax, cfg.Grid.LengthMin, cfg.Grid.LengthMax)
	}

	// Zero means one worker per CPU.
	if cfg.Grid.WorkerCount <= 0 {
		cfg.Grid.WorkerCount = runtime.NumCPU()
	}

	return cfg, nil
}

// Default returns the built-in configuration without consulting the
// environment. Used by tests and library embedders.
func Default() *Config {
	cfg := &Config{}
	cfg.Environment = "development"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output = "stderr"
	cfg.Solver.Tolerance = 1e-6
	cfg.Solver.MaxIterations = 200
	cfg.Grid.Resolution = 50
	cfg.Grid.DiameterMin = 0.1
	cfg.Grid.DiameterMax = 1.2
	cfg.Grid.LengthMin = 0.1
	cfg.Grid.LengthMax = 2.2
	cfg.Grid.WorkerCount = runtime.NumCPU()
	return cfg
}
