package engine

import "sync"

// Grid is a sampling of the penalized cost surface over a fixed
// diameter/length window. Cost is indexed [length][diameter], matching
// the contour-plot convention of the visualization layer: Cost[i][j] is
// the penalized cost at (D[j], L[i]).
type Grid struct {
	D    []float64   `json:"d"`
	L    []float64   `json:"l"`
	Cost [][]float64 `json:"cost"`
}

// ContourGrid returns the cost-surface grid for the engine's problem
// parameters. The grid depends only on the parameters and the configured
// window, never on a particular run, so it is computed once and shared
// by all subsequent calls.
func (e *Engine) ContourGrid() *Grid {
	e.gridOnce.Do(func() {
		e.grid = e.buildGrid()
	})
	return e.grid
}

func (e *Engine) buildGrid() *Grid {
	res := e.cfg.Grid.Resolution
	g := &Grid{
		D:    linspace(e.cfg.Grid.DiameterMin, e.cfg.Grid.DiameterMax, res),
		L:    linspace(e.cfg.Grid.LengthMin, e.cfg.Grid.LengthMax, res),
		Cost: make([][]float64, res),
	}

	// Grid cells are independent, so rows are fanned out to a bounded
	// pool of workers.
	rows := make(chan int)
	var wg sync.WaitGroup
	workers := e.cfg.Grid.WorkerCount
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				row := make([]float64, res)
				for j := 0; j < res; j++ {
					row[j] = e.params.PenalizedCost(g.D[j], g.L[i])
				}
				g.Cost[i] = row
			}
		}()
	}
	for i := 0; i < res; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return g
}

// linspace returns n evenly spaced samples over [lo, hi], endpoints
// included.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
