package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"sync"

	"github.com/kmulvey/path"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sudarshand03/Optimal-Liver-Allocation/pkg/exchange/types"
)

// PoolFileRegex captures the files we load pairs from.
var PoolFileRegex = regexp.MustCompile(".*.json$")

// Pool holds every patient-donor pair in the exchange, keyed by id.
// Pairs only enter through Load*, there is no add/remove inventory surface.
type Pool struct {
	store      map[int]types.Pair
	lock       sync.RWMutex
	poolHits   prometheus.Counter
	poolMisses prometheus.Counter
}

// pairRecord is the wire form of a pair, profiles arrive as raw coordinate slices.
type pairRecord struct {
	ID      int       `json:"id"`
	X       []float64 `json:"x"`
	Yl      []float64 `json:"yl"`
	Yr      []float64 `json:"yr"`
	Willing bool      `json:"willing"`
	Direct  bool      `json:"direct"`
}

func (r pairRecord) toPair() (types.Pair, error) {
	var pair = types.Pair{ID: r.ID, Willing: r.Willing, Direct: r.Direct}
	var err error

	if pair.X, err = types.NewProfile(r.X); err != nil {
		return types.Pair{}, fmt.Errorf("pair %d: patient profile: %w", r.ID, err)
	}
	if pair.Yl, err = types.NewProfile(r.Yl); err != nil {
		return types.Pair{}, fmt.Errorf("pair %d: left-lobe profile: %w", r.ID, err)
	}
	if pair.Yr, err = types.NewProfile(r.Yr); err != nil {
		return types.Pair{}, fmt.Errorf("pair %d: right-lobe profile: %w", r.ID, err)
	}

	return pair, nil
}

// NewPool creates an empty pool and registers its counters.
func NewPool(promNamespace string) *Pool {
	var p = new(Pool)
	p.store = make(map[int]types.Pair)
	p.poolHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      "pair_pool_hits",
		},
	)
	p.poolMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      "pair_pool_misses",
		},
	)
	prometheus.MustRegister(p.poolHits)
	prometheus.MustRegister(p.poolMisses)

	return p
}

// LoadFile reads one json array of pair records into the pool.
// A vector of the wrong arity or a duplicate pair id fails the whole load.
func (p *Pool) LoadFile(file string) error {

	var f, err = os.Open(file)
	if err != nil {
		return fmt.Errorf("Pool error opening file: %s, err: %w", file, err)
	}

	var records []pairRecord
	err = json.NewDecoder(f).Decode(&records)
	if err != nil {
		return fmt.Errorf("Pool error decoding json file: %s, err: %w", file, err)
	}

	p.lock.Lock()
	for _, record := range records {
		pair, err := record.toPair()
		if err != nil {
			p.lock.Unlock()
			return fmt.Errorf("Pool error in file: %s, err: %w", file, err)
		}
		if _, found := p.store[pair.ID]; found {
			p.lock.Unlock()
			return fmt.Errorf("Pool error in file: %s, duplicate pair id: %d", file, pair.ID)
		}
		p.store[pair.ID] = pair
	}
	p.lock.Unlock()

	if err = f.Close(); err != nil {
		return fmt.Errorf("Pool error closing file: %s, err: %w", file, err)
	}

	return nil
}

// LoadDir loads every pool file in the given directory.
func (p *Pool) LoadDir(dir string) error {

	var files, err = path.ListFiles(dir, path.NewRegexFilesFilter(PoolFileRegex))
	if err != nil {
		return fmt.Errorf("Pool error listing dir: %s, err: %w", dir, err)
	}

	for _, file := range path.OnlyNames(files) {
		if err := p.LoadFile(file); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the pair with the given id. Unlike a cache there is nothing to
// compute on a miss, an unknown id is the caller's error.
func (p *Pool) Get(id int) (types.Pair, error) {

	p.lock.RLock()
	var pair, ok = p.store[id]
	p.lock.RUnlock()

	if !ok {
		p.poolMisses.Inc()
		return types.Pair{}, fmt.Errorf("no pair with id %d in the pool", id)
	}

	p.poolHits.Inc()
	return pair, nil
}

// NumPairs returns the number of pairs in the pool.
func (p *Pool) NumPairs() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.store)
}

// IDs returns every pair id in the pool, sorted.
func (p *Pool) IDs() []int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	var ids = make([]int, 0, len(p.store))
	for id := range p.store {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// ExchangeIDs returns the sorted ids of pairs that participate in the
// exchange, pairs that prefer a direct transplant sit out.
func (p *Pool) ExchangeIDs() []int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	var ids = make([]int, 0, len(p.store))
	for id, pair := range p.store {
		if !pair.Direct {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	return ids
}
