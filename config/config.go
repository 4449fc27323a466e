package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"

	"txnproc/logutil"
	"txnproc/processor"
)

// Config is the full configuration for a txnbench run: which protocol to
// exercise, how it's provisioned, and what workload to throw at it.
type Config struct {
	Mode string `toml:"mode"`

	WorkerCount  int    `toml:"worker-count"`
	DatabaseSize uint64 `toml:"database-size"`

	Workload Workload       `toml:"workload"`
	Log      logutil.Config `toml:"log"`
}

// Workload describes the mix of transactions the benchmark harness
// submits: RMW transactions over a configurable read-set and write-set
// size, drawn from a configurable key distribution, each simulating a
// fixed amount of body execution time.
type Workload struct {
	ReadSetSize    int     `toml:"read-set-size"`
	WriteSetSize   int     `toml:"write-set-size"`
	Distribution   string  `toml:"distribution"` // "uniform", "zipfian", or "hotspot"
	Zipfian        float64 `toml:"zipfian-theta"`
	HotsetFraction float64 `toml:"hotspot-hotset-fraction"`
	HotOpnFraction float64 `toml:"hotspot-hot-opn-fraction"`

	BodyDurationMicros int64 `toml:"body-duration-micros"`

	TransactionsPerRound int `toml:"transactions-per-round"`
	Rounds               int `toml:"rounds"`
}

// DefaultConf is the reference configuration: MVCC-TO mode, an 8-worker
// pool, a 1,000,000-key database, and a modest uniform RMW workload.
var DefaultConf = Config{
	Mode:         "mvcc",
	WorkerCount:  8,
	DatabaseSize: 1_000_000,
	Workload: Workload{
		ReadSetSize:          10,
		WriteSetSize:         10,
		Distribution:         "uniform",
		Zipfian:              0.99,
		HotsetFraction:       0.2,
		HotOpnFraction:       0.8,
		BodyDurationMicros:   0,
		TransactionsPerRound: 100_000,
		Rounds:               3,
	},
}

// Load starts from DefaultConf and overlays whatever path's toml table
// sets, the same DecodeFile-over-defaults idiom the teacher's own
// tinykv-server/main.go uses for its -config flag. An empty path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	conf := DefaultConf
	if path == "" {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return Config{}, errors.Trace(err)
	}
	return conf, nil
}

// ModeValue parses Mode into a processor.Mode.
func (c Config) ModeValue() (processor.Mode, error) {
	switch c.Mode {
	case "serial":
		return processor.Serial, nil
	case "2pl-x":
		return processor.TwoPLExclusive, nil
	case "2pl-sx":
		return processor.TwoPLSharedExclusive, nil
	case "occ":
		return processor.OCC, nil
	case "p-occ":
		return processor.ParallelOCC, nil
	case "mvcc":
		return processor.MVCC, nil
	default:
		return 0, errors.Errorf("config: unrecognized mode %q", c.Mode)
	}
}

// Validate reports whether c describes a runnable benchmark.
func (c Config) Validate() error {
	if _, err := c.ModeValue(); err != nil {
		return err
	}
	if c.WorkerCount <= 0 {
		return errors.New("config: worker-count must be positive")
	}
	if c.DatabaseSize == 0 {
		return errors.New("config: database-size must be positive")
	}
	w := c.Workload
	if w.ReadSetSize < 0 || w.WriteSetSize < 0 {
		return errors.New("config: read-set-size and write-set-size must be non-negative")
	}
	if uint64(w.ReadSetSize+w.WriteSetSize) > c.DatabaseSize {
		return errors.New("config: read-set-size + write-set-size must not exceed database-size")
	}
	switch w.Distribution {
	case "uniform", "zipfian", "hotspot":
	default:
		return errors.Errorf("config: unrecognized workload distribution %q", w.Distribution)
	}
	if w.TransactionsPerRound <= 0 || w.Rounds <= 0 {
		return errors.New("config: transactions-per-round and rounds must be positive")
	}
	return nil
}
