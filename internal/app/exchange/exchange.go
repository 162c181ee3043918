package exchange

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/sudarshand03/Optimal-Liver-Allocation/internal/app/exchange/eval"
	"github.com/sudarshand03/Optimal-Liver-Allocation/pkg/exchange/types"
)

// Compat evaluates donor-patient combinations across the pool to find every
// feasible transplant. It builds the compatibility edges a matching mechanism
// would run on, it does not pick matches itself.
type Compat struct {
	*stats
	Pool *eval.Pool
	*eval.Evaluator
	seen        *roaring64.Bitmap
	combos      chan types.Combo
	dedupCombos bool
	bitmapLock  sync.RWMutex
}

// NewCompat is the constructor which loads the pool and sets up everything for
// evaluation but does not actually start it, Run() must be called for that.
func NewCompat(promNamespace, poolDir string, numWorkers int, dedupCombos bool) (*Compat, error) {

	var c = new(Compat)

	c.combos = make(chan types.Combo)
	c.stats = newStats(promNamespace)
	c.dedupCombos = dedupCombos
	if dedupCombos {
		c.seen = roaring64.New()
	}

	c.Pool = eval.NewPool(promNamespace)
	if err := c.Pool.LoadDir(poolDir); err != nil {
		return nil, err
	}
	if numPairs := c.Pool.NumPairs(); numPairs < 2 {
		return nil, fmt.Errorf("insufficient pairs to evaluate: only %d pairs loaded", numPairs)
	}

	c.Evaluator = eval.NewEvaluator(numWorkers, c.combos, c.Pool, promNamespace)

	go c.stats.publishStats(c.Pool, c.seen, dedupCombos, &c.bitmapLock)

	return c, nil
}

// Run starts the eval workers and feeds them every ordered donor-patient
// combination of the given ids. Callers usually pass Pool.ExchangeIDs().
func (c *Compat) Run(ctx context.Context, ids []int) (chan eval.Result, chan error) {
	var results, errors = c.Evaluator.Run(ctx)
	go c.streamCombos(ctx, ids)
	return results, errors
}

// Shutdown unregisters prom stats. Context cancel must be called to
// kill the eval workers.
func (c *Compat) Shutdown() {
	c.stats.unregister()
}
