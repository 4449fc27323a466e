package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"txnproc/bench"
	"txnproc/config"
	"txnproc/logutil"
)

var (
	configPath string

	modeArg         string
	workerCountArg  int
	dbSizeArg       uint64
	readSetSizeArg  int
	writeSetSizeArg int
	distArg         string
	roundsArg       int
	txnsPerRoundArg int
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = modeArg
	}
	if cmd.Flags().Changed("workers") {
		cfg.WorkerCount = workerCountArg
	}
	if cmd.Flags().Changed("db-size") {
		cfg.DatabaseSize = dbSizeArg
	}
	if cmd.Flags().Changed("read-set") {
		cfg.Workload.ReadSetSize = readSetSizeArg
	}
	if cmd.Flags().Changed("write-set") {
		cfg.Workload.WriteSetSize = writeSetSizeArg
	}
	if cmd.Flags().Changed("distribution") {
		cfg.Workload.Distribution = distArg
	}
	if cmd.Flags().Changed("rounds") {
		cfg.Workload.Rounds = roundsArg
	}
	if cmd.Flags().Changed("txns-per-round") {
		cfg.Workload.TransactionsPerRound = txnsPerRoundArg
	}

	return cfg, cfg.Validate()
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the transaction processor benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log, err := logutil.New(cfg.Log)
			if err != nil {
				return err
			}

			h, err := bench.New(cfg, logutil.Named(log, "harness"))
			if err != nil {
				return err
			}
			defer h.Stop()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sc := make(chan os.Signal, 1)
			signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sc
				fmt.Println("\ngot interrupt, abandoning the current round")
				cancel()
			}()

			summaries, err := h.RunRounds(ctx)
			if err != nil && len(summaries) == 0 {
				return err
			}

			bench.RenderReport(os.Stdout, summaries)
			if len(summaries) > 1 {
				fmt.Println("\naverage:")
				bench.RenderReport(os.Stdout, []bench.Summary{bench.Average(summaries)})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a txnbench.toml configuration file")
	cmd.Flags().StringVar(&modeArg, "mode", "", "concurrency control mode: serial, 2pl-x, 2pl-sx, occ, p-occ, mvcc")
	cmd.Flags().IntVar(&workerCountArg, "workers", 0, "worker pool size")
	cmd.Flags().Uint64Var(&dbSizeArg, "db-size", 0, "number of keys in the database")
	cmd.Flags().IntVar(&readSetSizeArg, "read-set", 0, "read set size per transaction")
	cmd.Flags().IntVar(&writeSetSizeArg, "write-set", 0, "write set size per transaction")
	cmd.Flags().StringVar(&distArg, "distribution", "", "key distribution: uniform, zipfian, or hotspot")
	cmd.Flags().IntVar(&roundsArg, "rounds", 0, "number of measured rounds")
	cmd.Flags().IntVar(&txnsPerRoundArg, "txns-per-round", 0, "transactions submitted per round")

	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "txnbench",
		Short: "Benchmark in-memory transaction processing concurrency control protocols",
	}
	rootCmd.AddCommand(newRunCommand())
	cobra.EnablePrefixMatching = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
