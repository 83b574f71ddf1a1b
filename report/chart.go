package report

import (
	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Chart renders mean time against thread count, one line per workload. The
// image format follows the file extension of path.
type Chart struct {
	collector
	path string
}

// NewChart creates a Chart sink that saves to path.
func NewChart(path string) *Chart {
	return &Chart{path: path}
}

// Flush renders the collected results and saves the image.
func (c *Chart) Flush() error {
	results := c.snapshot()
	if len(results) == 0 {
		log.Warnf("no results to chart, skipping %s", c.path)
		return nil
	}

	p := plot.New()
	p.Title.Text = "Mean trial time"
	p.X.Label.Text = "Threads"
	p.Y.Label.Text = "Time (ms)"
	p.Y.Min = 0

	var lines []interface{}
	for _, s := range groupByWorkload(results) {
		xys := make(plotter.XYs, len(s.results))
		for i, r := range s.results {
			xys[i].X = float64(r.Threads)
			xys[i].Y = r.MeanMillis()
		}
		lines = append(lines, s.description, xys)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return errors.Annotate(err, "plot results")
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, c.path); err != nil {
		return errors.Annotatef(err, "save %s", c.path)
	}

	log.Infof("chart saved to %s", c.path)
	return nil
}
