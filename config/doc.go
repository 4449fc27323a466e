// Package config defines the on-disk and flag-bindable configuration for
// the txnbench CLI: which concurrency-control mode to run, how big the
// worker pool and database are, and how the benchmark's workload is
// shaped. It mirrors the teacher's own kv/config package in spirit — a
// plain struct with toml tags, loaded with github.com/BurntSushi/toml and
// then overridden by whichever cobra/pflag flags the caller set.
package config
