package exchange

import (
	"runtime"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sudarshand03/Optimal-Liver-Allocation/internal/app/exchange/eval"
)

// stats are prometheus stats for the compatibility engine
type stats struct {
	ComboTotal       prometheus.Counter
	GCTime           prometheus.Gauge
	TotalPairs       prometheus.Gauge
	TotalEvaluations prometheus.Gauge
	PoolPairs        prometheus.Gauge
	SeenCombos       prometheus.Gauge
	ComboHits        prometheus.Counter
	ComboMisses      prometheus.Counter
	PromNamespace    string
}

// newStats inits all the stats
func newStats(promNamespace string) *stats {
	var s = new(stats)
	s.PromNamespace = promNamespace

	s.GCTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: promNamespace,
			Name:      "gc_time_nano",
			Help:      "how long a gc sweep took",
		},
	)
	s.TotalEvaluations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: promNamespace,
			Name:      "total_evaluations",
			Help:      "how many donor-patient evaluations need to be done",
		},
	)
	s.TotalPairs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: promNamespace,
			Name:      "total_pairs",
			Help:      "how many pairs we were given to evaluate",
		},
	)
	s.ComboTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      "combo_total",
			Help:      "How many combinations we streamed.",
		},
	)
	s.PoolPairs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: promNamespace,
			Name:      "pool_pairs",
			Help:      "how many pairs are in the pool",
		},
	)
	s.SeenCombos = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: promNamespace,
			Name:      "seen_combos",
			Help:      "cardinality of the seen-combination bitmap",
		},
	)
	s.ComboHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      "combo_hits",
			Help:      "combinations checked against the seen bitmap",
		},
	)
	s.ComboMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      "combo_misses",
			Help:      "combinations not yet in the seen bitmap",
		},
	)
	prometheus.MustRegister(s.ComboTotal)
	prometheus.MustRegister(s.GCTime)
	prometheus.MustRegister(s.TotalEvaluations)
	prometheus.MustRegister(s.TotalPairs)
	prometheus.MustRegister(s.PoolPairs)
	prometheus.MustRegister(s.SeenCombos)
	prometheus.MustRegister(s.ComboHits)
	prometheus.MustRegister(s.ComboMisses)

	return s
}

// publishStats publishes go GC stats + pool size to prom every 10 seconds
func (s *stats) publishStats(pool *eval.Pool, seen *roaring64.Bitmap, dedupCombos bool, bitmapLock *sync.RWMutex) {
	for {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		s.GCTime.Set(float64(memStats.PauseTotalNs))

		s.PoolPairs.Set(float64(pool.NumPairs()))

		if dedupCombos {
			bitmapLock.RLock()
			s.SeenCombos.Set(float64(seen.GetCardinality()))
			bitmapLock.RUnlock()
		}

		time.Sleep(10 * time.Second)
	}
}

// unregister removes all the stats
func (s *stats) unregister() {
	prometheus.Unregister(s.ComboTotal)
	prometheus.Unregister(s.GCTime)
	prometheus.Unregister(s.TotalEvaluations)
	prometheus.Unregister(s.TotalPairs)
	prometheus.Unregister(s.PoolPairs)
	prometheus.Unregister(s.SeenCombos)
	prometheus.Unregister(s.ComboHits)
	prometheus.Unregister(s.ComboMisses)
}
