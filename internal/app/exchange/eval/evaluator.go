package eval

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/kmulvey/goutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sudarshand03/Optimal-Liver-Allocation/pkg/exchange/types"
)

// Evaluator classifies donor-patient combinations to find feasible transplants
type Evaluator struct {
	evalTime             prometheus.Gauge
	evaluationsCompleted prometheus.Gauge
	rightLobeWithheld    prometheus.Counter
	inputCombos          chan types.Combo
	pool                 *Pool
	numWorkers           int
}

// Result is a feasible donor-patient combination and the lobe that serves it
type Result struct {
	Donor   int
	Patient int
	Lobe    types.Feasibility
}

func NewEvaluator(numWorkers int, inputCombos chan types.Combo, pool *Pool, promNamespace string) *Evaluator {

	if numWorkers <= 0 || numWorkers > runtime.GOMAXPROCS(0)-1 {
		numWorkers = 1
	}

	var ev = &Evaluator{
		inputCombos: inputCombos,
		pool:        pool,
		numWorkers:  numWorkers,
		evalTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: promNamespace,
				Name:      "eval_time_nano",
				Help:      "How long it takes to classify one donor-patient combination, in nanoseconds.",
			}),
		evaluationsCompleted: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: promNamespace,
				Name:      "evaluations_completed",
			}),
		rightLobeWithheld: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: promNamespace,
				Name:      "right_lobe_withheld",
				Help:      "Right-lobe-only combinations withheld because the donor is unwilling.",
			}),
	}
	prometheus.MustRegister(ev.evalTime)
	prometheus.MustRegister(ev.evaluationsCompleted)
	prometheus.MustRegister(ev.rightLobeWithheld)

	return ev
}

func (ev *Evaluator) Run(ctx context.Context) (chan Result, chan error) {
	var errorChans = make([]chan error, ev.numWorkers)
	var resultChans = make([]chan Result, ev.numWorkers)

	for i := 0; i < ev.numWorkers; i++ {
		var errors = make(chan error)
		var results = make(chan Result)
		errorChans[i] = errors
		resultChans[i] = results
		go ev.evalWorker(ctx, results, errors)
	}

	return goutils.MergeChannels(resultChans...), goutils.MergeChannels(errorChans...)
}

func (ev *Evaluator) evalWorker(ctx context.Context, results chan Result, errors chan error) {

	// declare these here to reduce allocations in the loop
	var start time.Time
	var donor, patient types.Pair
	var err error
	var lobe types.Feasibility

	for {
		select {
		case <-ctx.Done():
			close(errors)
			close(results)
			return
		default:
			c, open := <-ev.inputCombos
			if !open {
				close(errors)
				close(results)
				return
			}
			start = time.Now()

			donor, err = ev.pool.Get(c.Donor)
			if err != nil {
				errors <- fmt.Errorf("Get failed for donor: %d, err: %w", c.Donor, err)
				continue
			}

			patient, err = ev.pool.Get(c.Patient)
			if err != nil {
				errors <- fmt.Errorf("Get failed for patient: %d, err: %w", c.Patient, err)
				continue
			}

			lobe = types.TransplantType(donor, patient)

			// the predicate itself ignores willingness, it is applied here:
			// a right-lobe-only result from an unwilling donor is withheld
			if lobe == types.RightFeasible && !donor.Willing {
				ev.rightLobeWithheld.Inc()
			} else if lobe != types.Infeasible {
				results <- Result{Donor: c.Donor, Patient: c.Patient, Lobe: lobe}
			}

			ev.evalTime.Set(float64(time.Since(start)))
			ev.evaluationsCompleted.Inc()
		}
	}
}
