// Package latency records per-operation processing times and renders the
// percentile report the benchmark prints after a run.
package latency

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder accumulates operation latencies in an HDR histogram with three
// significant digits, covering 1ns up to 10s. Not safe for concurrent use;
// the benchmark records from a single goroutine.
type Recorder struct {
	hist  *hdrhistogram.Histogram
	total time.Duration
	count int64
}

func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, int64(10*time.Second), 3),
	}
}

// Record adds one operation's duration. Durations outside the histogram's
// range are clamped by RecordValue; the total stays exact either way.
func (r *Recorder) Record(d time.Duration) {
	_ = r.hist.RecordValue(int64(d))
	r.total += d
	r.count++
}

func (r *Recorder) Count() int64 { return r.count }

func (r *Recorder) Total() time.Duration { return r.total }

func (r *Recorder) Mean() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.total / time.Duration(r.count)
}

// Percentile returns the latency at quantile q, e.g. 99.9.
func (r *Recorder) Percentile(q float64) time.Duration {
	return time.Duration(r.hist.ValueAtQuantile(q))
}

// WriteReport renders the summary table.
func (r *Recorder) WriteReport(w io.Writer, mode string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tOPS\tTOTAL\tMEAN\tP50\tP99\tP99.9")
	fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
		mode,
		r.count,
		r.total.Round(time.Microsecond),
		r.Mean().Round(time.Nanosecond),
		r.Percentile(50),
		r.Percentile(99),
		r.Percentile(99.9),
	)
	return tw.Flush()
}
