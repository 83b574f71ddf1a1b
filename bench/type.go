package bench

import (
	"time"
)

// DefaultTrials is the number of timed runs averaged per configuration.
const DefaultTrials = 3

// Spec names a workload file to benchmark.
type Spec struct {
	Name        string // Short name, e.g. "var17"
	Description string // Human readable label for reports
	Path        string // Workload file to load
}

// Result is the timing of one (workload, thread count) configuration.
type Result struct {
	Workload    string          `json:"workload"`
	Description string          `json:"description"`
	Threads     int             `json:"threads"`
	Operations  int             `json:"operations"`
	Trials      []time.Duration `json:"trials"`
	Mean        time.Duration   `json:"mean"`
	StdDev      time.Duration   `json:"stddev"`
}

// MeanMillis returns the mean trial time in milliseconds.
func (r Result) MeanMillis() float64 {
	return float64(r.Mean) / float64(time.Millisecond)
}

// StdDevMillis returns the trial standard deviation in milliseconds.
func (r Result) StdDevMillis() float64 {
	return float64(r.StdDev) / float64(time.Millisecond)
}

// Failure records a configuration that produced no timing.
type Failure struct {
	Workload string
	Threads  int
	Err      error
}

// Summary is the outcome of a sweep.
type Summary struct {
	Results []Result
	Failed  []Failure
}

// Sink receives results as each configuration completes.
type Sink interface {
	Record(r Result)
}
