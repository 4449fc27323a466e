package bench

import (
	"math/rand"
	"time"

	"txnproc/config"
	"txnproc/txn"
	"txnproc/txn/bodies"
)

// Workload draws RMW transactions over a configured read-set and
// write-set size, with keys sampled from a configurable distribution.
// It plays the role go-ycsb's CoreWorkload does for the teacher's own
// client: own a key generator, hand out one operation at a time.
type Workload struct {
	dbSize       int64
	readSetSize  int
	writeSetSize int
	bodyDuration time.Duration

	gen keyGenerator
	rng *rand.Rand
}

// NewWorkload builds a Workload from cfg, seeded with seed so successive
// rounds (or parallel harness instances) can be made reproducible or
// independent as the caller prefers.
func NewWorkload(cfg config.Config, seed int64) *Workload {
	w := cfg.Workload
	var gen keyGenerator
	switch w.Distribution {
	case "zipfian":
		gen = newZipfianGenerator(int64(cfg.DatabaseSize), w.Zipfian)
	case "hotspot":
		gen = newHotspotGenerator(int64(cfg.DatabaseSize), w.HotsetFraction, w.HotOpnFraction)
	default:
		gen = newUniformGenerator(int64(cfg.DatabaseSize))
	}
	return &Workload{
		dbSize:       int64(cfg.DatabaseSize),
		readSetSize:  w.ReadSetSize,
		writeSetSize: w.WriteSetSize,
		bodyDuration: time.Duration(w.BodyDurationMicros) * time.Microsecond,
		gen:          gen,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Next returns a fresh transaction with a disjoint read set and write set
// drawn from the workload's distribution.
func (w *Workload) Next() *txn.Txn {
	chosen := make(map[txn.Key]struct{}, w.readSetSize+w.writeSetSize)
	readSet := w.drawDistinct(chosen, w.readSetSize)
	writeSet := w.drawDistinct(chosen, w.writeSetSize)
	return txn.New(bodies.NewRMW(readSet, writeSet, w.bodyDuration))
}

func (w *Workload) drawDistinct(chosen map[txn.Key]struct{}, n int) []txn.Key {
	keys := make([]txn.Key, 0, n)
	for len(keys) < n {
		k := txn.Key(w.gen.next(w.rng))
		if _, ok := chosen[k]; ok {
			continue
		}
		chosen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
