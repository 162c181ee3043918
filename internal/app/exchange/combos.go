package exchange

import (
	"context"
	"math"

	"github.com/sudarshand03/Optimal-Liver-Allocation/pkg/exchange/types"
)

// streamCombos generates roughly n^2 combinations and writes them to a channel
// that is read by the eval workers.
func (c *Compat) streamCombos(ctx context.Context, ids []int) {
	var numPairs = float64(len(ids))
	c.stats.TotalPairs.Set(numPairs)
	c.stats.TotalEvaluations.Set(math.Pow(numPairs, 2) - numPairs)

	for _, donor := range ids {
		for _, patient := range ids {
			if donor != patient { // dont evaluate yourself
				select {
				case <-ctx.Done():
					close(c.combos)
					return
				default:
					if c.dedupCombos {
						c.bitmapLock.Lock()

						if key := comboKey(donor, patient); !c.seen.Contains(key) {
							c.combos <- types.Combo{Donor: donor, Patient: patient}
							c.seen.Add(key)
							c.stats.ComboTotal.Inc()
							c.stats.ComboMisses.Inc()
						}
						c.stats.ComboHits.Inc()

						c.bitmapLock.Unlock()
					} else {
						c.combos <- types.Combo{Donor: donor, Patient: patient}
						c.stats.ComboTotal.Inc()
					}
				}
			}
		}
	}
	close(c.combos)
}

// comboKey packs an ordered donor-patient combination into one bitmap key.
// Feasibility is directional so (donor, patient) and (patient, donor) get
// distinct keys.
func comboKey(donor, patient int) uint64 {
	return uint64(uint32(donor))<<32 | uint64(uint32(patient))
}
