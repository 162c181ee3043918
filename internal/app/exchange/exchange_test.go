package exchange

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sudarshand03/Optimal-Liver-Allocation/pkg/exchange/types"
)

func TestNewCompat(t *testing.T) {
	t.Parallel()

	var compat, err = NewCompat("TestNewCompat", "./testdata", 2, true)
	assert.NoError(t, err)

	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	// duplicate the first id, the seen bitmap keeps its combos from being evaluated twice
	var ids = compat.Pool.ExchangeIDs()
	ids = append(ids, ids[0])

	var results, errors = compat.Run(ctx, ids)
	var done = make(chan struct{})

	go func() {
		var feasible = make(map[string]types.Feasibility)
		var numResults int
		for results != nil || errors != nil {
			select {
			case err, open := <-errors:
				if !open {
					errors = nil
					continue
				}
				assert.NoError(t, err)
			case result, open := <-results:
				if !open {
					results = nil
					continue
				}
				feasible[fmt.Sprintf("%d->%d", result.Donor, result.Patient)] = result.Lobe
				numResults++
			}
		}
		assert.Equal(t, map[string]types.Feasibility{
			"1->2": types.RightFeasible, // patient 2 only fits donor 1's right lobe
			"1->3": types.LeftFeasible,
			"2->3": types.LeftFeasible,
		}, feasible)
		assert.Equal(t, 3, numResults)
		close(done)
	}()

	<-done

	compat.Shutdown()
}

func TestNewCompatInsufficientPairs(t *testing.T) {
	t.Parallel()

	var dir = "TestNewCompatInsufficientPairs"
	assert.NoError(t, os.MkdirAll(dir, 0755))
	var record = `[{"id": 1, "x": [0, 1, 0], "yl": [0, 1, 0], "yr": [0, 1, 1], "willing": true, "direct": false}]`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "pool.json"), []byte(record), 0600))

	var compat, err = NewCompat("TestNewCompatInsufficientPairs", dir, 2, false)
	assert.Equal(t, "insufficient pairs to evaluate: only 1 pairs loaded", err.Error())
	assert.Nil(t, compat)

	assert.NoError(t, os.RemoveAll(dir))
}

func TestCompatCancel(t *testing.T) {
	t.Parallel()

	var compat, err = NewCompat("TestCompatCancel", "./testdata", 1, false)
	assert.NoError(t, err)

	var ctx, cancel = context.WithCancel(context.Background())
	var results, errors = compat.Run(ctx, compat.Pool.ExchangeIDs())
	cancel()

	// drain until the streamer and workers unwind
	for results != nil || errors != nil {
		select {
		case _, open := <-errors:
			if !open {
				errors = nil
			}
		case _, open := <-results:
			if !open {
				results = nil
			}
		}
	}

	compat.Shutdown()
}
