package bench

import (
	"sync"
	"time"

	"github.com/andrew200611/Lab3-mutex/register"
	"github.com/andrew200611/Lab3-mutex/workload"
	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
	"gonum.org/v1/gonum/stat"
)

// Runner times workloads against a fresh register per trial.
type Runner struct {
	Trials int // Timed runs per configuration

	sink int64 // worker results, kept so they stay observable
}

// NewRunner creates a Runner that averages the given number of trials.
func NewRunner(trials int) *Runner {
	if trials < 1 {
		trials = DefaultTrials
	}
	return &Runner{Trials: trials}
}

// Run loads spec once, splits it across threads workers and times Trials runs.
// A workload that cannot be loaded fails immediately with no retry.
func (r *Runner) Run(spec Spec, threads int) (Result, error) {
	ops, err := workload.Load(spec.Path)
	if err != nil {
		return Result{}, errors.Annotatef(err, "workload %s", spec.Name)
	}
	log.Debugf("loaded %d commands from %s for %d threads", len(ops), spec.Path, threads)

	blocks, err := workload.Partition(ops, threads)
	if err != nil {
		return Result{}, err
	}

	trials := r.Trials
	if trials < 1 {
		trials = DefaultTrials
	}

	res := Result{
		Workload:    spec.Name,
		Description: spec.Description,
		Threads:     threads,
		Operations:  len(ops),
		Trials:      make([]time.Duration, 0, trials),
	}
	for i := 0; i < trials; i++ {
		elapsed := r.trial(blocks)
		res.Trials = append(res.Trials, elapsed)
		log.Debugf("workload %s, %d threads, trial %d/%d: %v", spec.Name, threads, i+1, trials, elapsed)
	}

	samples := make([]float64, len(res.Trials))
	for i, d := range res.Trials {
		samples[i] = float64(d)
	}
	mean, std := stat.MeanStdDev(samples, nil)
	res.Mean = time.Duration(mean)
	if len(samples) > 1 {
		res.StdDev = time.Duration(std)
	}

	return res, nil
}

// trial runs one worker per block on a new register and returns the wall
// time from just before the first worker starts to just after the last one
// finishes.
func (r *Runner) trial(blocks [][]workload.Operation) time.Duration {
	reg := register.New(register.DefaultFields)
	sinks := make([]int64, len(blocks))

	var wg sync.WaitGroup
	start := time.Now()
	for i, block := range blocks {
		wg.Add(1)
		go func(i int, ops []workload.Operation) {
			defer wg.Done()
			sinks[i] = Execute(reg, ops)
		}(i, block)
	}
	wg.Wait()
	elapsed := time.Since(start)

	for _, s := range sinks {
		r.sink += s
	}
	return elapsed
}

// Sweep runs every (spec, thread count) pair in order and hands each result to
// sink. A failed configuration is logged and skipped; the sweep goes on.
func (r *Runner) Sweep(specs []Spec, threads []int, sink Sink) Summary {
	var summary Summary
	for _, spec := range specs {
		log.Infof("benchmarking %s (%s)", spec.Name, spec.Description)
		for _, n := range threads {
			res, err := r.Run(spec, n)
			if err != nil {
				log.Errorf("workload %s with %d threads failed: %v", spec.Name, n, err)
				summary.Failed = append(summary.Failed, Failure{Workload: spec.Name, Threads: n, Err: err})
				continue
			}
			summary.Results = append(summary.Results, res)
			if sink != nil {
				sink.Record(res)
			}
		}
	}

	log.Debugf("sweep done: %d results, %d failed, sink %d", len(summary.Results), len(summary.Failed), r.sink)
	return summary
}
