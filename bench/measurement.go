package bench

import (
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// measurement accumulates per-transaction latencies for one round in an
// HDR histogram, the same approach the teacher's go-ycsb measurement
// package uses (github.com/HdrHistogram/hdrhistogram-go), minus its
// global-singleton/properties-driven setup: txnbench owns one
// measurement per round rather than one process-wide instance.
type measurement struct {
	startTime time.Time
	hist      *hdrhistogram.Histogram
	committed int64
	aborted   int64
}

func newMeasurement() *measurement {
	return &measurement{
		startTime: time.Now(),
		hist:      hdrhistogram.New(1, 24*60*60*1000*1000, 3),
	}
}

func (m *measurement) record(latency time.Duration, committed bool) {
	m.hist.RecordValue(latency.Microseconds())
	if committed {
		m.committed++
	} else {
		m.aborted++
	}
}

// Summary is the human-facing rollup of one round's measurement.
type Summary struct {
	ElapsedSeconds float64
	Committed      int64
	Aborted        int64
	ThroughputQPS  float64
	AvgLatencyUs   int64
	MinLatencyUs   int64
	MaxLatencyUs   int64
	P99LatencyUs   int64
	P999LatencyUs  int64
}

func (m *measurement) summary() Summary {
	elapsed := time.Since(m.startTime).Seconds()
	total := m.committed + m.aborted
	qps := float64(total) / elapsed
	return Summary{
		ElapsedSeconds: elapsed,
		Committed:      m.committed,
		Aborted:        m.aborted,
		ThroughputQPS:  qps,
		AvgLatencyUs:   int64(m.hist.Mean()),
		MinLatencyUs:   m.hist.Min(),
		MaxLatencyUs:   m.hist.Max(),
		P99LatencyUs:   m.hist.ValueAtPercentile(99),
		P999LatencyUs:  m.hist.ValueAtPercentile(99.9),
	}
}
