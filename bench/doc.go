// Package bench drives a processor.Processor with a generated RMW
// workload and reports latency/throughput, the same role go-ycsb's own
// client+measurement packages play for the teacher's KV server: pick
// keys from a configurable distribution, submit transactions, time
// them with an HDR histogram, and render a per-round summary table.
package bench
