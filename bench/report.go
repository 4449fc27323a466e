package bench

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

var reportHeader = []string{
	"Round", "Takes(s)", "Committed", "Aborted", "QPS",
	"Avg(us)", "Min(us)", "Max(us)", "99th(us)", "99.9th(us)",
}

// RenderReport writes a table summarizing one round per row, the same
// tablewriter-backed rendering the teacher's go-ycsb RenderTable helper
// uses for its own per-operation summary rows.
func RenderReport(w io.Writer, rounds []Summary) {
	if len(rounds) == 0 {
		return
	}
	rows := make([][]string, 0, len(rounds))
	for i, s := range rounds {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f", s.ElapsedSeconds),
			fmt.Sprintf("%d", s.Committed),
			fmt.Sprintf("%d", s.Aborted),
			fmt.Sprintf("%.1f", s.ThroughputQPS),
			fmt.Sprintf("%d", s.AvgLatencyUs),
			fmt.Sprintf("%d", s.MinLatencyUs),
			fmt.Sprintf("%d", s.MaxLatencyUs),
			fmt.Sprintf("%d", s.P99LatencyUs),
			fmt.Sprintf("%d", s.P999LatencyUs),
		})
	}

	tb := tablewriter.NewWriter(w)
	tb.SetHeader(reportHeader)
	tb.AppendBulk(rows)
	tb.Render()
}

// Average collapses per-round summaries into a single mean-of-rounds
// summary, the "average of three rounds" rollup a benchmark report
// conventionally leads with.
func Average(rounds []Summary) Summary {
	if len(rounds) == 0 {
		return Summary{}
	}
	var avg Summary
	for _, s := range rounds {
		avg.ElapsedSeconds += s.ElapsedSeconds
		avg.Committed += s.Committed
		avg.Aborted += s.Aborted
		avg.ThroughputQPS += s.ThroughputQPS
		avg.AvgLatencyUs += s.AvgLatencyUs
		avg.MinLatencyUs += s.MinLatencyUs
		avg.MaxLatencyUs += s.MaxLatencyUs
		avg.P99LatencyUs += s.P99LatencyUs
		avg.P999LatencyUs += s.P999LatencyUs
	}
	n := int64(len(rounds))
	nf := float64(n)
	avg.ElapsedSeconds /= nf
	avg.Committed /= n
	avg.Aborted /= n
	avg.ThroughputQPS /= nf
	avg.AvgLatencyUs /= n
	avg.MinLatencyUs /= n
	avg.MaxLatencyUs /= n
	avg.P99LatencyUs /= n
	avg.P999LatencyUs /= n
	return avg
}
