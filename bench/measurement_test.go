package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMeasurementSummaryCountsCommitsAndAborts(t *testing.T) {
	m := newMeasurement()
	m.record(10*time.Microsecond, true)
	m.record(20*time.Microsecond, true)
	m.record(5*time.Microsecond, false)

	s := m.summary()
	require.Equal(t, int64(2), s.Committed)
	require.Equal(t, int64(1), s.Aborted)
	require.Greater(t, s.MaxLatencyUs, int64(0))
}

func TestReportAverageOfRounds(t *testing.T) {
	rounds := []Summary{
		{Committed: 10, Aborted: 0, ThroughputQPS: 100},
		{Committed: 20, Aborted: 2, ThroughputQPS: 200},
	}
	avg := Average(rounds)
	require.Equal(t, int64(15), avg.Committed)
	require.Equal(t, int64(1), avg.Aborted)
	require.Equal(t, 150.0, avg.ThroughputQPS)
}
