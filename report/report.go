// Package report collects benchmark results and writes them out as a console
// table, CSV, JSON or a PNG chart.
package report

import (
	"sync"

	"github.com/andrew200611/Lab3-mutex/bench"
	"github.com/pingcap/errors"
)

// Sink is a bench.Sink that writes what it collected on Flush.
type Sink interface {
	bench.Sink
	Flush() error
}

// collector keeps results in arrival order.
type collector struct {
	mu      sync.Mutex
	results []bench.Result
}

func (c *collector) Record(r bench.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = append(c.results, r)
}

func (c *collector) snapshot() []bench.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]bench.Result, len(c.results))
	copy(out, c.results)
	return out
}

// Multi fans results out to several sinks.
type Multi []Sink

// Record passes r to every sink.
func (m Multi) Record(r bench.Result) {
	for _, s := range m {
		s.Record(r)
	}
}

// Flush flushes every sink and returns the first error.
func (m Multi) Flush() error {
	var first error
	for _, s := range m {
		if err := s.Flush(); err != nil && first == nil {
			first = errors.Trace(err)
		}
	}
	return first
}

// threadCounts returns the distinct thread counts in first-seen order.
func threadCounts(results []bench.Result) []int {
	seen := make(map[int]struct{})
	var counts []int
	for _, r := range results {
		if _, ok := seen[r.Threads]; ok {
			continue
		}
		seen[r.Threads] = struct{}{}
		counts = append(counts, r.Threads)
	}
	return counts
}

// series is one workload's results in first-seen order.
type series struct {
	name        string
	description string
	byThreads   map[int]bench.Result
	results     []bench.Result
}

func groupByWorkload(results []bench.Result) []*series {
	index := make(map[string]*series)
	var out []*series
	for _, r := range results {
		s, ok := index[r.Workload]
		if !ok {
			s = &series{name: r.Workload, description: r.Description, byThreads: make(map[int]bench.Result)}
			index[r.Workload] = s
			out = append(out, s)
		}
		s.byThreads[r.Threads] = r
		s.results = append(s.results, r)
	}
	return out
}
