package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/andrew200611/Lab3-mutex/bench"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
)

// Console logs each result as it arrives and prints a summary table on Flush.
type Console struct {
	collector
	out io.Writer
}

// NewConsole creates a Console that prints its summary to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Record logs r and keeps it for the summary table.
func (c *Console) Record(r bench.Result) {
	log.Info("configuration done",
		"workload", r.Workload,
		"threads", r.Threads,
		"mean", fmt.Sprintf("%.1f ms", r.MeanMillis()),
		"stddev", fmt.Sprintf("%.1f ms", r.StdDevMillis()))
	c.collector.Record(r)
}

// Flush prints one row per workload and one column per thread count.
func (c *Console) Flush() error {
	results := c.snapshot()
	if len(results) == 0 {
		_, err := fmt.Fprintln(c.out, "no results")
		return errors.Trace(err)
	}

	_, err := fmt.Fprintln(c.out, Table(results))
	return errors.Trace(err)
}

// Table renders results as a workload by thread count grid of mean times.
func Table(results []bench.Result) string {
	counts := threadCounts(results)

	headers := []string{"Workload"}
	for _, n := range counts {
		headers = append(headers, threadLabel(n))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for _, s := range groupByWorkload(results) {
		row := []string{s.description}
		for _, n := range counts {
			r, ok := s.byThreads[n]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.1f ms", r.MeanMillis()))
		}
		t.Row(row...)
	}
	return t.Render()
}

func threadLabel(n int) string {
	if n == 1 {
		return "1 thread"
	}
	return strconv.Itoa(n) + " threads"
}
