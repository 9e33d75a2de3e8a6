package core

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/indexer"
	"chainrelay/internal/metrics"
	"chainrelay/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency    = 4
	defaultBlockParseSize = 50
)

var errWatermarkMoved = errors.New("watermark moved by a concurrent step")

// Reconciler advances ledger rows from indexer data, one wallet at a time.
type Reconciler struct {
	logs             *zap.SugaredLogger
	store            repository.Store
	indexers         map[chain.Key]Indexer
	balances         map[chain.Key]BalanceReader
	metrics          *metrics.Metrics
	concurrency      int
	defaultParseSize uint64
}

func WithConcurrency(n int) func(r *Reconciler) {
	return func(r *Reconciler) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithDefaultBlockParseSize(n uint64) func(r *Reconciler) {
	return func(r *Reconciler) {
		if n > 0 {
			r.defaultParseSize = n
		}
	}
}

// WithBalanceReader enables the min balance check for key.
func WithBalanceReader(key chain.Key, b BalanceReader) func(r *Reconciler) {
	return func(r *Reconciler) {
		r.balances[key] = b
	}
}

func NewReconciler(logger *zap.SugaredLogger, store repository.Store, indexers []Indexer, m *metrics.Metrics, opts ...func(r *Reconciler)) *Reconciler {
	r := &Reconciler{
		logs:             logger,
		store:            store,
		indexers:         make(map[chain.Key]Indexer, len(indexers)),
		balances:         map[chain.Key]BalanceReader{},
		metrics:          m,
		concurrency:      defaultConcurrency,
		defaultParseSize: defaultBlockParseSize,
	}
	for _, idx := range indexers {
		r.indexers[idx.Key()] = idx
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Keys lists the chains with a configured indexer.
func (r *Reconciler) Keys() []chain.Key {
	keys := make([]chain.Key, 0, len(r.indexers))
	for k := range r.indexers {
		keys = append(keys, k)
	}
	return keys
}

// Cycle runs one step for every active wallet of keys. A failing wallet is
// logged and counted; it never stops the others.
func (r *Reconciler) Cycle(ctx context.Context, keys ...chain.Key) (CycleReport, error) {
	if len(keys) == 0 {
		keys = r.Keys()
	}

	var wallets []repository.Wallet
	for _, key := range keys {
		if _, ok := r.indexers[key]; !ok {
			return CycleReport{}, fmt.Errorf("%w: %s", indexer.ErrIndexerNotConfigured, key)
		}
		ws, err := r.store.ListActiveWallets(ctx, key)
		if err != nil {
			return CycleReport{}, fmt.Errorf("list wallets of %s: %w", key, err)
		}
		wallets = append(wallets, ws...)
	}

	var (
		mu     sync.Mutex
		report = CycleReport{Wallets: len(wallets)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, w := range wallets {
		g.Go(func() error {
			res, err := r.Step(gctx, w)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				r.metrics.IncReconcileError(w.Key().String())
				r.logs.Errorw("reconciliation step failed",
					"chain", w.Key().String(),
					"wallet", w.ID,
					"address", w.Address,
					"error", err,
					"alert", true)
				return nil
			}
			report.Steps = append(report.Steps, res)
			return nil
		})
	}
	_ = g.Wait()

	r.logs.Infow("reconciliation cycle finished", "wallets", report.Wallets, "failed", report.Failed)
	return report, nil
}

// Step reconciles w over (lastParsedBlock, min(lastParsedBlock+blockParseSize, safeHeight)].
// Ledger transitions, outbox events and the new watermark commit together.
func (r *Reconciler) Step(ctx context.Context, w repository.Wallet) (StepResult, error) {
	started := time.Now()
	key := w.Key()

	idx, ok := r.indexers[key]
	if !ok {
		return StepResult{}, fmt.Errorf("%w: %s", indexer.ErrIndexerNotConfigured, key)
	}

	safe, err := idx.SafeHeight(ctx)
	if err != nil {
		return StepResult{}, err
	}

	parseSize := w.BlockParseSize
	if parseSize == 0 {
		parseSize = r.defaultParseSize
	}

	from := w.LastParsedBlock
	to := min(from+parseSize, safe)
	res := StepResult{WalletID: w.ID, From: from, To: from}
	if to <= from {
		return res, nil
	}

	outgoing, err := idx.Outgoing(ctx, w.Address, from, to)
	if err != nil {
		return StepResult{}, err
	}
	incoming, err := idx.Incoming(ctx, w.Address, from, to)
	if err != nil {
		return StepResult{}, err
	}

	var confirmed, failed, all []string
	for _, t := range outgoing {
		all = append(all, t.Hash)
		switch t.Status {
		case chain.StatusConfirmed:
			confirmed = append(confirmed, t.Hash)
		case chain.StatusFailed:
			failed = append(failed, t.Hash)
		}
	}

	err = r.store.Atomic(ctx, func(s repository.Store) error {
		current, err := s.LockWallet(ctx, w.ID)
		if err != nil {
			return err
		}
		if current.LastParsedBlock != from {
			return errWatermarkMoved
		}

		lastNonce := current.LastProcessedNonce
		known, err := s.ListByHashes(ctx, all)
		if err != nil {
			return err
		}
		matched := make(map[string]struct{}, len(known))
		for _, tx := range known {
			if tx.Key() != key || !strings.EqualFold(tx.Address, w.Address) {
				continue
			}
			matched[tx.TransactionHash] = struct{}{}
			if int64(tx.Nonce) > lastNonce {
				lastNonce = int64(tx.Nonce)
			}
		}
		for _, h := range chain.NormalizeHashes(all) {
			if _, ok := matched[h]; !ok {
				res.Unknown++
				r.logs.Warnw("indexer reported a transaction missing from the ledger",
					"chain", key.String(),
					"address", w.Address,
					"hash", h)
			}
		}

		q := repository.TransitionQuery{Key: key, Address: w.Address}

		q.Hashes = confirmed
		changedConfirmed, err := s.TransitionStatus(ctx, q, chain.StatusConfirmed, "")
		if err != nil {
			return err
		}
		q.Hashes = failed
		changedFailed, err := s.TransitionStatus(ctx, q, chain.StatusFailed, "failed on chain")
		if err != nil {
			return err
		}

		// a wallet nonce is consumed once, so a lower one left PENDING was dropped or replaced
		since := uint64(max(current.LastProcessedNonce+1, 0))
		pending, err := s.ListPending(ctx, key, w.Address, since)
		if err != nil {
			return err
		}
		for _, tx := range pending {
			if int64(tx.Nonce) >= lastNonce {
				break
			}
			res.Stale++
			r.logs.Errorw("pending transaction behind a processed nonce",
				"chain", key.String(),
				"address", w.Address,
				"nonce", tx.Nonce,
				"hash", tx.TransactionHash,
				"lastProcessedNonce", lastNonce,
				"alert", true)
		}

		events, _, err := transitionEvents(key, w.Address, chain.StatusConfirmed, "", changedConfirmed)
		if err != nil {
			return err
		}
		failedEvents, refunds, err := transitionEvents(key, w.Address, chain.StatusFailed, "failed on chain", changedFailed)
		if err != nil {
			return err
		}
		events = append(events, failedEvents...)

		for _, t := range incoming {
			e, err := newEvent(KindIncomingTransfer, "", IncomingTransfer{
				Chain:       key.Chain,
				ChainType:   key.Type,
				Wallet:      w.Address,
				Hash:        t.Hash,
				From:        t.From,
				Value:       t.Value,
				BlockNumber: t.BlockNumber,
			})
			if err != nil {
				return err
			}
			events = append(events, e)
		}

		if err := s.InsertEvents(ctx, events); err != nil {
			return err
		}
		if err := s.AdvanceWallet(ctx, w.ID, to, lastNonce); err != nil {
			return err
		}

		res.To = to
		res.Confirmed = len(changedConfirmed)
		res.Failed = len(changedFailed)
		res.Incoming = len(incoming)
		res.Refunds = refunds
		return nil
	})
	if errors.Is(err, errWatermarkMoved) {
		r.logs.Infow("wallet reconciled by another worker", "chain", key.String(), "wallet", w.ID)
		return StepResult{WalletID: w.ID, From: from, To: from, Skipped: true}, nil
	}
	if err != nil {
		return StepResult{}, fmt.Errorf("commit step (%d, %d] of wallet %d: %w", from, to, w.ID, err)
	}

	r.metrics.RecordTransitions(key.String(), string(chain.StatusConfirmed), res.Confirmed)
	r.metrics.RecordTransitions(key.String(), string(chain.StatusFailed), res.Failed)
	r.metrics.RecordRefunds(key.String(), res.Refunds)
	r.metrics.RecordStep(key.String(), w.Address, to, time.Since(started).Seconds())

	r.logs.Infow("wallet reconciled",
		"chain", key.String(),
		"wallet", w.ID,
		"from", from,
		"to", to,
		"confirmed", res.Confirmed,
		"failed", res.Failed,
		"incoming", res.Incoming,
		"stale", res.Stale)

	r.checkBalance(ctx, w)

	return res, nil
}

func (r *Reconciler) checkBalance(ctx context.Context, w repository.Wallet) {
	reader, ok := r.balances[w.Key()]
	if !ok {
		return
	}
	minimum, ok := new(big.Int).SetString(w.MinBalance, 10)
	if !ok || minimum.Sign() <= 0 {
		return
	}

	balance, err := reader.Balance(ctx, w)
	if err != nil {
		r.logs.Warnw("failed to read wallet balance", "chain", w.Key().String(), "address", w.Address, "error", err)
		return
	}

	low := balance.Cmp(minimum) < 0
	r.metrics.SetLowBalance(w.Key().String(), w.Address, low)
	if low {
		r.logs.Errorw("wallet balance below minimum",
			"chain", w.Key().String(),
			"address", w.Address,
			"balance", balance.String(),
			"minBalance", w.MinBalance,
			"alert", true)
	}
}
