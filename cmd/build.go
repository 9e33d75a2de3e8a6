package cmd

import (
	"context"
	"fmt"

	"chainrelay/internal/chain"
	"chainrelay/internal/config"
	"chainrelay/internal/core"
	"chainrelay/internal/db"
	"chainrelay/internal/endpoint"
	"chainrelay/internal/ethereum"
	"chainrelay/internal/indexer"
	"chainrelay/internal/metrics"
	"chainrelay/internal/notify"
	"chainrelay/internal/repository"
	"chainrelay/internal/substrate"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func keyOf(c int, t string) chain.Key {
	return chain.NewKey(chain.Chain(c), chain.Type(t))
}

func newMetrics() (*prometheus.Registry, *metrics.Metrics, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.New(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("register metrics: %w", err)
	}
	return reg, m, nil
}

func openDatabase(logger *zap.SugaredLogger, cfg config.App) (*db.GormDB, *repository.Repository, error) {
	gdb, err := db.NewPostgresDB(cfg.Database.DSN, cfg.Database.LogSQL)
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err)
		return nil, nil, err
	}
	return gdb, repository.NewRepository(gdb), nil
}

func newRegistry(logger *zap.SugaredLogger, cfg config.App, source endpoint.Source) *endpoint.Registry {
	opts := make([]func(r *endpoint.Registry), 0, len(cfg.Endpoints))
	for _, e := range cfg.Endpoints {
		opts = append(opts, endpoint.WithStatic(keyOf(e.Chain, e.ChainType), e.URL))
	}
	return endpoint.NewRegistry(logger, source, opts...)
}

// chainClients holds one adapter per configured relay. Every adapter also
// reads balances.
type chainClients struct {
	adapters []core.Adapter
	balances map[chain.Key]core.BalanceReader
}

func (c chainClients) reconcilerOptions() []func(r *core.Reconciler) {
	opts := make([]func(r *core.Reconciler), 0, len(c.balances))
	for key, b := range c.balances {
		opts = append(opts, core.WithBalanceReader(key, b))
	}
	return opts
}

// dialChains fails on the first relay without an endpoint or profile.
func dialChains(ctx context.Context, logger *zap.SugaredLogger, cfg config.App, registry *endpoint.Registry) (chainClients, error) {
	clients := chainClients{balances: make(map[chain.Key]core.BalanceReader, len(cfg.Relays))}

	overrides := make([]substrate.Profile, 0, len(cfg.SubstrateProfiles))
	for _, p := range cfg.SubstrateProfiles {
		overrides = append(overrides, substrate.Profile{
			Chain:      chain.Chain(p.Chain),
			SS58Prefix: p.SS58Prefix,
			EraPeriod:  p.EraPeriod,
		})
	}

	for _, relay := range cfg.Relays {
		key := keyOf(relay.Chain, relay.ChainType)

		url, err := registry.Lookup(ctx, key)
		if err != nil {
			logger.Errorw("no endpoint for relay", "chain", key.String(), "error", err)
			return chainClients{}, err
		}

		var adapter interface {
			core.Adapter
			core.BalanceReader
		}
		switch key.Type {
		case chain.TypeEVM:
			adapter, err = ethereum.Dial(ctx, logger, key, url)
		case chain.TypeSubstrate:
			var profile substrate.Profile
			profile, err = substrate.ProfileFor(key.Chain, overrides...)
			if err == nil {
				adapter, err = substrate.Dial(ctx, logger, key, url, profile)
			}
		default:
			err = fmt.Errorf("%w: %s", core.ErrChainNotSupported, key)
		}
		if err != nil {
			logger.Errorw("failed to build chain adapter", "chain", key.String(), "error", err)
			return chainClients{}, err
		}

		clients.adapters = append(clients.adapters, adapter)
		clients.balances[key] = adapter
		logger.Infow("chain adapter ready", "chain", key.String())
	}

	return clients, nil
}

func newIndexers(logger *zap.SugaredLogger, cfg config.App) ([]core.Indexer, error) {
	indexers := make([]core.Indexer, 0, len(cfg.Indexers))
	for _, ic := range cfg.Indexers {
		client, err := indexer.New(logger, indexer.Config{
			Key:           keyOf(ic.Chain, ic.ChainType),
			URL:           ic.URL,
			Confirmations: ic.Confirmations,
			Timeout:       ic.Timeout,
		})
		if err != nil {
			return nil, err
		}
		indexers = append(indexers, client)
	}
	return indexers, nil
}

func newReconciler(logger *zap.SugaredLogger, cfg config.App, store repository.Store, indexers []core.Indexer, clients chainClients, m *metrics.Metrics) *core.Reconciler {
	opts := append([]func(r *core.Reconciler){
		core.WithConcurrency(cfg.Reconcile.Concurrency),
		core.WithDefaultBlockParseSize(cfg.Reconcile.DefaultBlockParseSize),
	}, clients.reconcilerOptions()...)

	return core.NewReconciler(logger, store, indexers, m, opts...)
}

func newResubmitter(logger *zap.SugaredLogger, cfg config.App, store repository.Store, clients chainClients, m *metrics.Metrics) *core.Resubmitter {
	return core.NewResubmitter(logger, store, clients.adapters, m, core.ResubmitPolicy{
		GracePeriod: cfg.Resubmit.GracePeriod,
		MaxAttempts: cfg.Resubmit.MaxAttempts,
		BatchSize:   cfg.Resubmit.BatchSize,
	})
}

type messaging struct {
	conn      *nats.Conn
	publisher *notify.Publisher
	credits   *notify.CreditClient
}

func connectMessaging(logger *zap.SugaredLogger, cfg config.App) (messaging, error) {
	conn, js, err := notify.Connect(cfg.NATS, serviceName, logger)
	if err != nil {
		return messaging{}, err
	}

	var stream notify.JetStream
	if js != nil {
		stream = js
	}

	return messaging{
		conn:      conn,
		publisher: notify.NewPublisher(logger, conn, stream, cfg.NATS.SubjectPrefix),
		credits:   notify.NewCreditClient(logger, conn, cfg.NATS.CreditsSubject, cfg.NATS.RequestTimeout),
	}, nil
}

func (m messaging) close() {
	if m.conn != nil {
		_ = m.conn.Drain()
	}
}

func seedWallets(cfg config.App) []repository.Wallet {
	wallets := make([]repository.Wallet, 0, len(cfg.Wallets))
	for _, w := range cfg.Wallets {
		parseSize := w.BlockParseSize
		if parseSize == 0 {
			parseSize = cfg.Reconcile.DefaultBlockParseSize
		}
		minBalance := w.MinBalance
		if minBalance == "" {
			minBalance = "0"
		}
		wallets = append(wallets, repository.Wallet{
			Chain:              chain.Chain(w.Chain),
			ChainType:          chain.Type(w.ChainType),
			Address:            w.Address,
			Seed:               w.Seed,
			NextNonce:          w.NextNonce,
			LastProcessedNonce: -1,
			LastParsedBlock:    w.LastParsedBlock,
			BlockParseSize:     parseSize,
			MinBalance:         minBalance,
		})
	}
	return wallets
}
