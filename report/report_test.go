package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andrew200611/Lab3-mutex/bench"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []bench.Result {
	ms := time.Millisecond
	return []bench.Result{
		{Workload: "var17", Description: "Variant 17", Threads: 1, Operations: 100, Trials: []time.Duration{10 * ms, 12 * ms, 14 * ms}, Mean: 12 * ms, StdDev: 2 * ms},
		{Workload: "var17", Description: "Variant 17", Threads: 2, Operations: 100, Trials: []time.Duration{20 * ms}, Mean: 20 * ms},
		{Workload: "custom", Description: "Write heavy", Threads: 1, Operations: 100, Trials: []time.Duration{5 * ms}, Mean: 5 * ms},
	}
}

func record(s bench.Sink, results []bench.Result) {
	for _, r := range results {
		s.Record(r)
	}
}

func TestTable(t *testing.T) {
	out := Table(sampleResults())

	assert.Contains(t, out, "Workload")
	assert.Contains(t, out, "1 thread")
	assert.Contains(t, out, "2 threads")
	assert.Contains(t, out, "Variant 17")
	assert.Contains(t, out, "12.0 ms")
	assert.Contains(t, out, "20.0 ms")
	assert.Contains(t, out, "Write heavy")
	assert.Contains(t, out, "5.0 ms")
	assert.Contains(t, out, "-", "a missing configuration is shown as a dash")
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	require.NoError(t, c.Flush())
	assert.Contains(t, buf.String(), "no results")

	buf.Reset()
	record(c, sampleResults())
	require.NoError(t, c.Flush())
	assert.Contains(t, buf.String(), "Variant 17")
	assert.Contains(t, buf.String(), "12.0 ms")
}

func TestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	c := NewCSV(path)
	record(c, sampleResults())
	require.NoError(t, c.Flush())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"workload", "description", "threads", "operations", "trials", "mean_ms", "stddev_ms"}, rows[0])
	assert.Equal(t, []string{"var17", "Variant 17", "1", "100", "3", "12.000", "2.000"}, rows[1])
	assert.Equal(t, "custom", rows[3][0])
}

func TestCSVUnwritable(t *testing.T) {
	c := NewCSV(filepath.Join(t.TempDir(), "missing", "results.csv"))
	assert.Error(t, c.Flush())
}

func TestJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	j := NewJSON(path)
	assert.Len(t, j.RunID(), 36)
	record(j, sampleResults())
	require.NoError(t, j.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var run Run
	require.NoError(t, sonic.Unmarshal(data, &run))
	assert.Equal(t, j.RunID(), run.ID)
	assert.NotEmpty(t, run.StartedAt)
	require.Len(t, run.Results, 3)
	assert.Equal(t, "var17", run.Results[0].Workload)
	assert.Equal(t, []float64{10, 12, 14}, run.Results[0].TrialsMS)
	assert.InDelta(t, 12.0, run.Results[0].MeanMS, 1e-9)
	assert.InDelta(t, 2.0, run.Results[0].StdDevMS, 1e-9)
}

func TestJSONEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, NewJSON(path).Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"results": []`)
}

func TestChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.png")
	c := NewChart(path)
	record(c, sampleResults())
	require.NoError(t, c.Flush())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestChartWithoutResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, NewChart(path).Flush())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is written without results")
}

type failingSink struct {
	collector
	flushed bool
}

func (f *failingSink) Flush() error {
	f.flushed = true
	return errors.New("disk full")
}

func TestMulti(t *testing.T) {
	bad := &failingSink{}
	good := &failingSink{}
	var buf bytes.Buffer
	console := NewConsole(&buf)

	m := Multi{bad, console, good}
	record(m, sampleResults())

	assert.Len(t, bad.snapshot(), 3)
	assert.Len(t, console.snapshot(), 3)

	err := m.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, good.flushed, "later sinks are flushed even after an error")
	assert.Contains(t, buf.String(), "Variant 17")
}

func TestThreadCountsAndGrouping(t *testing.T) {
	results := sampleResults()
	assert.Equal(t, []int{1, 2}, threadCounts(results))

	groups := groupByWorkload(results)
	require.Len(t, groups, 2)
	assert.Equal(t, "var17", groups[0].name)
	assert.Len(t, groups[0].results, 2)
	assert.Equal(t, "custom", groups[1].name)
	_, ok := groups[1].byThreads[2]
	assert.False(t, ok)
}
