package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/engine"
)

var (
	method     string
	initialD   float64
	initialL   float64
	tolerance  float64
	maxIter    int
	outputPath string
	skipGrid   bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run a single descent method",
	Long:  `Runs one optimization from the given starting point and writes the trajectory payload as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := engine.Request{
			Method:  method,
			D0:      initialD,
			L0:      initialL,
			Tol:     tolerance,
			MaxIter: maxIter,
		}
		result, err := eng.RunOptimization(cmd.Context(), req)
		if err != nil {
			return err
		}
		if skipGrid {
			result.Contour = nil
		}
		return writeJSON(result)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all three methods from the same starting point",
	Long:  `Runs steepest descent, Newton and DFP side by side and writes the aggregated payload, with one shared contour grid, as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := engine.Request{
			D0:      initialD,
			L0:      initialL,
			Tol:     tolerance,
			MaxIter: maxIter,
		}
		result, err := eng.RunComparison(cmd.Context(), req)
		if err != nil {
			return err
		}
		if skipGrid {
			result.Contour = nil
		}
		return writeJSON(result)
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Sample the penalized cost surface",
	Long:  `Writes the contour grid of the penalized cost over the configured diameter/length window as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(eng.ContourGrid())
	},
}

func init() {
	for _, c := range []*cobra.Command{optimizeCmd, compareCmd} {
		c.Flags().Float64Var(&initialD, "d0", 0.5, "Initial diameter (m)")
		c.Flags().Float64Var(&initialL, "l0", 1.0, "Initial length (m)")
		c.Flags().Float64Var(&tolerance, "tol", 0, "Gradient-norm tolerance (0 = configured default)")
		c.Flags().IntVar(&maxIter, "max-iter", 0, "Maximum iterations (0 = configured default)")
		c.Flags().BoolVar(&skipGrid, "no-grid", false, "Omit the contour grid from the output")
	}
	optimizeCmd.Flags().StringVar(&method, "method", "DFP", "Method tag: SD, Newton or DFP")

	rootCmd.PersistentFlags().StringVar(&outputPath, "out", "", "Output file (default stdout)")
	rootCmd.AddCommand(optimizeCmd, compareCmd, gridCmd)
}

func writeJSON(payload interface{}) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
