package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
)

// CSV writes one row per configuration to a file on Flush.
type CSV struct {
	collector
	path string
}

// NewCSV creates a CSV sink that writes to path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Flush writes a header and one row per collected result.
func (c *CSV) Flush() error {
	f, err := os.Create(c.path)
	if err != nil {
		return errors.Annotatef(err, "create %s", c.path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"workload", "description", "threads", "operations", "trials", "mean_ms", "stddev_ms"})
	for _, r := range c.snapshot() {
		w.Write([]string{
			r.Workload,
			r.Description,
			strconv.Itoa(r.Threads),
			strconv.Itoa(r.Operations),
			strconv.Itoa(len(r.Trials)),
			strconv.FormatFloat(r.MeanMillis(), 'f', 3, 64),
			strconv.FormatFloat(r.StdDevMillis(), 'f', 3, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Annotatef(err, "write %s", c.path)
	}

	log.Infof("results saved to %s", c.path)
	return nil
}
