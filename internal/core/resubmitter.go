package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/metrics"
	"chainrelay/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultGracePeriod = 30 * time.Second
	defaultMaxAttempts = 5
	defaultSweepBatch  = 50
)

// Resubmitter re-broadcasts PENDING rows that were signed and committed but
// never reached a node.
type Resubmitter struct {
	logs        *zap.SugaredLogger
	store       repository.Store
	adapters    map[chain.Key]Adapter
	metrics     *metrics.Metrics
	gracePeriod time.Duration
	maxAttempts int
	batchSize   int
	now         func() time.Time
}

type ResubmitPolicy struct {
	GracePeriod time.Duration
	MaxAttempts int
	BatchSize   int
}

func NewResubmitter(logger *zap.SugaredLogger, store repository.Store, adapters []Adapter, m *metrics.Metrics, policy ResubmitPolicy) *Resubmitter {
	r := &Resubmitter{
		logs:        logger,
		store:       store,
		adapters:    make(map[chain.Key]Adapter, len(adapters)),
		metrics:     m,
		gracePeriod: policy.GracePeriod,
		maxAttempts: policy.MaxAttempts,
		batchSize:   policy.BatchSize,
		now:         time.Now,
	}
	for _, a := range adapters {
		r.adapters[a.Key()] = a
	}
	if r.gracePeriod <= 0 {
		r.gracePeriod = defaultGracePeriod
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = defaultMaxAttempts
	}
	if r.batchSize <= 0 {
		r.batchSize = defaultSweepBatch
	}
	return r
}

// GracePeriod is how long a row may stay unbroadcast before it is swept.
func (r *Resubmitter) GracePeriod() time.Duration {
	return r.gracePeriod
}

// Sweep handles one batch per chain. Rows are taken in nonce order so a wallet's
// earlier nonces reach the node first.
func (r *Resubmitter) Sweep(ctx context.Context) (SweepReport, error) {
	var (
		report SweepReport
		errs   []error
	)
	cutoff := r.now().Add(-r.gracePeriod)

	for key, adapter := range r.adapters {
		rows, err := r.store.ListUnbroadcast(ctx, key, cutoff, r.batchSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("list unbroadcast %s: %w", key, err))
			continue
		}

		for _, tx := range rows {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if err := r.resubmit(ctx, adapter, tx, &report); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if report.Broadcast+report.Deferred+report.Errored > 0 {
		r.logs.Infow("resubmission sweep finished",
			"broadcast", report.Broadcast,
			"deferred", report.Deferred,
			"errored", report.Errored)
	}

	return report, errors.Join(errs...)
}

func (r *Resubmitter) resubmit(ctx context.Context, adapter Adapter, tx repository.Transaction, report *SweepReport) error {
	key := tx.Key()

	_, err := adapter.Submit(ctx, tx.RawTransaction)
	if errors.Is(err, chain.ErrNonceConsumed) {
		// an earlier attempt may have landed, the reconciler settles which one did
		r.logs.Warnw("nonce already consumed on re-broadcast", "chain", key.String(), "hash", tx.TransactionHash, "nonce", tx.Nonce)
		err = nil
	}
	if err == nil {
		report.Broadcast++
		r.metrics.RecordResubmission(key.String(), metrics.ResultBroadcast)
		r.logs.Infow("transaction re-broadcast", "chain", key.String(), "hash", tx.TransactionHash, "nonce", tx.Nonce)
		return r.store.MarkBroadcast(ctx, tx.ID, r.now().UTC())
	}

	attempts := tx.SubmitAttempts + 1
	if !chain.IsFatal(err) && attempts < r.maxAttempts {
		report.Deferred++
		r.metrics.RecordResubmission(key.String(), metrics.ResultDeferred)
		r.logs.Warnw("re-broadcast failed",
			"chain", key.String(),
			"hash", tx.TransactionHash,
			"attempts", attempts,
			"error", err)
		return r.store.RecordSubmitFailure(ctx, tx.ID, attempts, err.Error())
	}

	report.Errored++
	r.metrics.RecordResubmission(key.String(), metrics.ResultFailed)
	r.logs.Errorw("giving up on transaction",
		"chain", key.String(),
		"hash", tx.TransactionHash,
		"nonce", tx.Nonce,
		"attempts", attempts,
		"error", err,
		"alert", true)

	refunded, failErr := failTransaction(ctx, r.store, tx, err.Error())
	if failErr != nil {
		return failErr
	}
	r.metrics.RecordTransitions(key.String(), string(chain.StatusError), 1)
	if refunded {
		r.metrics.RecordRefunds(key.String(), 1)
	}
	return nil
}
