// internal/sim/batch.go
package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Batch describes a run of many games.
type Batch struct {
	Settings
	Games int
	// Seed is the seed of game 0; game i uses Seed+i.
	Seed uint64
	// Workers bounds the number of games in flight. Zero means GOMAXPROCS.
	Workers int
}

// RunBatch plays every game of b and returns the outcomes in game order.
// Each outcome is also added to stats when stats is non-nil. Game failures
// are recorded in the outcomes; the returned error is only set when ctx is
// cancelled.
func RunBatch(ctx context.Context, b Batch, stats *Stats) ([]Outcome, error) {
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, b.Games)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < b.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			o := RunGame(gctx, b.Settings, i, b.Seed+uint64(i))
			outcomes[i] = o
			if stats != nil {
				stats.Add(o)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
