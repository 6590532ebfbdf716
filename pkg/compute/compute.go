// Package compute runs per-cell kernels over square grids.
//
// A Dispatcher is the CPU stand-in for a fragment/compute shader dispatch: it
// calls a Kernel once for every cell of an n×n target and returns only after
// every cell has been written, so consecutive Dispatch calls are separated by a
// full barrier.
package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Kernel computes the output cell at (x, y). It must write no cell other than
// its own and must not read the target it writes.
type Kernel func(x, y int) error

// Dispatcher runs a kernel over an n×n grid.
type Dispatcher interface {
	Dispatch(n int, k Kernel) error
}

// Serial runs kernels on the calling goroutine in row-major order.
type Serial struct{}

// Dispatch implements Dispatcher.
func (Serial) Dispatch(n int, k Kernel) error {
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if err := k(x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pool splits the grid into contiguous row bands and runs one goroutine per
// band. Results are independent of the band layout.
type Pool struct {
	workers int
}

// NewPool returns a pool with the given number of workers.
// workers <= 0 selects GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of row bands a dispatch is split into.
func (p *Pool) Workers() int {
	return p.workers
}

// Dispatch implements Dispatcher.
func (p *Pool) Dispatch(n int, k Kernel) error {
	if n <= 0 {
		return nil
	}
	bands := p.workers
	if bands > n {
		bands = n
	}
	if bands <= 1 {
		return Serial{}.Dispatch(n, k)
	}

	rows := (n + bands - 1) / bands
	var g errgroup.Group
	for start := 0; start < n; start += rows {
		end := min(start+rows, n)
		g.Go(func() error {
			for y := start; y < end; y++ {
				for x := 0; x < n; x++ {
					if err := k(x, y); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
