package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"txnproc/config"
)

func TestHarnessRunsRoundsAndReports(t *testing.T) {
	for _, mode := range []string{"serial", "2pl-sx", "occ", "p-occ", "mvcc"} {
		t.Run(mode, func(t *testing.T) {
			cfg := config.DefaultConf
			cfg.Mode = mode
			cfg.WorkerCount = 4
			cfg.DatabaseSize = 200
			cfg.Workload.ReadSetSize = 2
			cfg.Workload.WriteSetSize = 2
			cfg.Workload.TransactionsPerRound = 50
			cfg.Workload.Rounds = 2

			h, err := New(cfg, zap.NewNop())
			require.NoError(t, err)
			defer h.Stop()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			summaries, err := h.RunRounds(ctx)
			require.NoError(t, err)
			require.Len(t, summaries, 2)
			for _, s := range summaries {
				require.Equal(t, int64(50), s.Committed+s.Aborted)
			}
		})
	}
}
