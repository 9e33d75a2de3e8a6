package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/core"
	"chainrelay/internal/repository"

	"github.com/spf13/cobra"
)

var (
	reconcileInterval time.Duration
	reconcileChains   []string
	resubmitInterval  time.Duration
	migrateSeed       bool
)

func init() {
	reconcileCmd.Flags().DurationVar(&reconcileInterval, "interval", 0, "repeat the cycle at this interval; a single cycle runs when zero")
	reconcileCmd.Flags().StringSliceVar(&reconcileChains, "chain", nil, "limit the cycle to these chains, as type:id (e.g. evm:1287)")
	resubmitCmd.Flags().DurationVar(&resubmitInterval, "interval", 0, "repeat the sweep at this interval; a single sweep runs when zero")
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "insert the configured wallets that do not exist yet")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// repeat runs fn once, or every interval until ctx is done when interval is set.
func repeat(ctx context.Context, interval time.Duration, fn func(ctx context.Context) error) error {
	if interval <= 0 {
		return fn(ctx)
	}
	runEvery(ctx, interval, func(ctx context.Context) {
		_ = fn(ctx)
	})
	return nil
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "advance ledger rows from indexer data for every active wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		keys, err := parseKeys(reconcileChains)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		gdb, repo, err := openDatabase(logger, cfg)
		if err != nil {
			return err
		}
		defer gdb.Close() //nolint:errcheck

		_, m, err := newMetrics()
		if err != nil {
			return err
		}

		indexers, err := newIndexers(logger, cfg)
		if err != nil {
			logger.Errorw("failed to build indexers", "error", err)
			return err
		}

		// Balance checks are best effort; reconciliation runs without adapters.
		clients, err := dialChains(ctx, logger, cfg, newRegistry(logger, cfg, repo))
		if err != nil {
			logger.Warnw("min balance checks disabled", "error", err)
		}

		reconciler := newReconciler(logger, cfg, repo, indexers, clients, m)
		return repeat(ctx, reconcileInterval, func(ctx context.Context) error {
			_, err := reconciler.Cycle(ctx, keys...)
			if err != nil {
				logger.Errorw("reconciliation cycle failed", "error", err)
			}
			return err
		})
	},
}

var resubmitCmd = &cobra.Command{
	Use:   "resubmit",
	Short: "re-broadcast committed transactions that never reached a node",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signalContext()
		defer stop()

		gdb, repo, err := openDatabase(logger, cfg)
		if err != nil {
			return err
		}
		defer gdb.Close() //nolint:errcheck

		_, m, err := newMetrics()
		if err != nil {
			return err
		}

		clients, err := dialChains(ctx, logger, cfg, newRegistry(logger, cfg, repo))
		if err != nil {
			return err
		}

		resubmitter := newResubmitter(logger, cfg, repo, clients, m)
		return repeat(ctx, resubmitInterval, func(ctx context.Context) error {
			_, err := resubmitter.Sweep(ctx)
			if err != nil {
				logger.Errorw("resubmission sweep failed", "error", err)
			}
			return err
		})
	},
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "publish pending outbox events until the backlog is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signalContext()
		defer stop()

		gdb, repo, err := openDatabase(logger, cfg)
		if err != nil {
			return err
		}
		defer gdb.Close() //nolint:errcheck

		_, m, err := newMetrics()
		if err != nil {
			return err
		}

		msg, err := connectMessaging(logger, cfg)
		if err != nil {
			logger.Errorw("failed to connect to NATS", "error", err)
			return err
		}
		defer msg.close()

		dispatcher := core.NewDispatcher(logger, repo, msg.publisher, m, cfg.Outbox.BatchSize)
		total := 0
		for {
			n, err := dispatcher.Flush(ctx)
			total += n
			if err != nil {
				logger.Errorw("outbox flush failed", "published", total, "error", err)
				return err
			}
			if n < dispatcher.BatchSize() {
				break
			}
		}

		logger.Infow("outbox drained", "published", total)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create the relay tables and optionally seed wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		gdb, repo, err := openDatabase(logger, cfg)
		if err != nil {
			return err
		}
		defer gdb.Close() //nolint:errcheck

		var wallets []repository.Wallet
		if migrateSeed {
			wallets = seedWallets(cfg)
		}

		if err := repo.MigrateAndSeed(cmd.Context(), wallets); err != nil {
			logger.Errorw("failed to migrate tables to database", "error", err)
			return err
		}

		logger.Infow("database migrated", "seededWallets", len(wallets))
		return nil
	},
}

func parseKeys(values []string) ([]chain.Key, error) {
	keys := make([]chain.Key, 0, len(values))
	for _, v := range values {
		key, err := chain.ParseKey(v)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
