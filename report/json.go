package report

import (
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pingcap/errors"
)

// Run is the document the JSON sink writes.
type Run struct {
	ID        string   `json:"run_id"`
	StartedAt string   `json:"started_at"`
	Results   []Record `json:"results"`
}

// Record is one configuration in a Run.
type Record struct {
	Workload    string    `json:"workload"`
	Description string    `json:"description"`
	Threads     int       `json:"threads"`
	Operations  int       `json:"operations"`
	TrialsMS    []float64 `json:"trials_ms"`
	MeanMS      float64   `json:"mean_ms"`
	StdDevMS    float64   `json:"stddev_ms"`
}

// JSON writes every result of a run, tagged with a fresh run ID, on Flush.
type JSON struct {
	collector
	path    string
	id      string
	started time.Time
}

// NewJSON creates a JSON sink that writes to path.
func NewJSON(path string) *JSON {
	return &JSON{
		path:    path,
		id:      uuid.NewString(),
		started: time.Now(),
	}
}

// RunID returns the ID written into the document.
func (j *JSON) RunID() string {
	return j.id
}

// Flush writes the run document with every collected result.
func (j *JSON) Flush() error {
	run := Run{
		ID:        j.id,
		StartedAt: j.started.UTC().Format(time.RFC3339),
		Results:   []Record{},
	}
	for _, r := range j.snapshot() {
		trials := make([]float64, len(r.Trials))
		for i, d := range r.Trials {
			trials[i] = float64(d) / float64(time.Millisecond)
		}
		run.Results = append(run.Results, Record{
			Workload:    r.Workload,
			Description: r.Description,
			Threads:     r.Threads,
			Operations:  r.Operations,
			TrialsMS:    trials,
			MeanMS:      r.MeanMillis(),
			StdDevMS:    r.StdDevMillis(),
		})
	}

	data, err := sonic.ConfigStd.MarshalIndent(run, "", "  ")
	if err != nil {
		return errors.Annotate(err, "serialize results")
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return errors.Annotatef(err, "write %s", j.path)
	}

	log.Infof("run %s saved to %s", j.id, j.path)
	return nil
}
