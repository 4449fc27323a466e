package bench

import (
	"context"
	"time"

	"go.uber.org/zap"

	"txnproc/config"
	"txnproc/processor"
	"txnproc/storage"
	"txnproc/txn"
)

// Harness owns a Processor and runs one workload against it for a fixed
// number of rounds, reporting each round's throughput and latency.
type Harness struct {
	cfg  config.Config
	proc *processor.Processor
	log  *zap.Logger
}

// New builds the storage engine and Processor cfg.Mode names, and wraps
// them in a Harness ready to run rounds. MVCC-TO gets an MVCCStore;
// every other mode gets a SingleVersionStore, matching the one Storage
// value table every scheduler loop is written against.
func New(cfg config.Config, log *zap.Logger, opts ...processor.Option) (*Harness, error) {
	mode, err := cfg.ModeValue()
	if err != nil {
		return nil, err
	}

	var store storage.Storage
	if mode == processor.MVCC {
		store = storage.NewMVCCStore()
	} else {
		store = storage.NewSingleVersionStore()
	}

	allOpts := append([]processor.Option{
		processor.WithLogger(log),
		processor.WithWorkerCount(cfg.WorkerCount),
	}, opts...)

	proc := processor.New(mode, store, cfg.DatabaseSize, allOpts...)
	return &Harness{cfg: cfg, proc: proc, log: log}, nil
}

// Stop shuts down the underlying processor.
func (h *Harness) Stop() { h.proc.Stop() }

// RunRounds submits cfg.Workload.Rounds rounds, each of
// cfg.Workload.TransactionsPerRound transactions, and returns one Summary
// per round.
func (h *Harness) RunRounds(ctx context.Context) ([]Summary, error) {
	summaries := make([]Summary, 0, h.cfg.Workload.Rounds)
	for round := 0; round < h.cfg.Workload.Rounds; round++ {
		s, err := h.runOneRound(ctx, int64(round))
		if err != nil {
			return summaries, err
		}
		h.log.Info("round complete",
			zap.Int("round", round+1),
			zap.Int64("committed", s.Committed),
			zap.Int64("aborted", s.Aborted),
			zap.Float64("qps", s.ThroughputQPS))
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (h *Harness) runOneRound(ctx context.Context, seed int64) (Summary, error) {
	n := h.cfg.Workload.TransactionsPerRound
	workload := NewWorkload(h.cfg, seed)

	m := newMeasurement()

	starts := make(map[*txn.Txn]time.Time, n)

	for i := 0; i < n; i++ {
		t := workload.Next()
		starts[t] = time.Now()
		h.proc.Submit(t)
	}

	for i := 0; i < n; i++ {
		r, err := h.proc.NextResult(ctx)
		if err != nil {
			return m.summary(), err
		}
		start := starts[r]
		delete(starts, r)

		m.record(time.Since(start), r.Status() == txn.Committed)
	}

	return m.summary(), nil
}
