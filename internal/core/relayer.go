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

// Relayer turns a submission request into a signed ledger row and broadcasts it.
//
// Wallet selection, nonce reservation, signing and the PENDING insert commit as
// one database transaction. Broadcast happens after the commit, so a failed RPC
// never loses a signed transaction: the row stays PENDING without broadcastAt
// and the Resubmitter picks it up.
type Relayer struct {
	logs     *zap.SugaredLogger
	store    repository.Store
	adapters map[chain.Key]Adapter
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewRelayer(logger *zap.SugaredLogger, store repository.Store, adapters []Adapter, m *metrics.Metrics) *Relayer {
	byKey := make(map[chain.Key]Adapter, len(adapters))
	for _, a := range adapters {
		byKey[a.Key()] = a
	}
	return &Relayer{
		logs:     logger,
		store:    store,
		adapters: byKey,
		metrics:  m,
		now:      time.Now,
	}
}

// Keys lists the chains this relayer can sign for.
func (r *Relayer) Keys() []chain.Key {
	keys := make([]chain.Key, 0, len(r.adapters))
	for k := range r.adapters {
		keys = append(keys, k)
	}
	return keys
}

func (r *Relayer) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if (req.ReferenceTable == "") != (req.ReferenceID == "") {
		return SubmitResult{}, ErrInvalidReference
	}

	adapter, ok := r.adapters[req.Key]
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: %s", ErrChainNotSupported, req.Key)
	}

	var tx repository.Transaction
	err := r.store.Atomic(ctx, func(s repository.Store) error {
		wallet, err := s.AcquireWallet(ctx, req.Key, req.Address)
		if err != nil {
			return err
		}

		nonce, err := s.ReserveNonce(ctx, &wallet)
		if err != nil {
			return err
		}

		signed, err := adapter.Sign(ctx, wallet, req.Payload, nonce)
		if err != nil {
			return fmt.Errorf("sign with wallet %d: %w", wallet.ID, err)
		}

		tx = repository.Transaction{
			Chain:             req.Key.Chain,
			ChainType:         req.Key.Type,
			Address:           wallet.Address,
			Nonce:             signed.Nonce,
			TransactionHash:   signed.Hash,
			RawTransaction:    signed.Raw,
			ReferenceTable:    req.ReferenceTable,
			ReferenceID:       req.ReferenceID,
			TransactionStatus: chain.StatusPending,
		}
		return s.InsertTransaction(ctx, &tx)
	})
	if err != nil {
		if chain.Alertable(err) {
			r.logs.Errorw("wallet key unusable", "chain", req.Key.String(), "error", err, "alert", true)
		}
		r.metrics.RecordSubmission(req.Key.String(), metrics.ResultFailed)
		return SubmitResult{}, fmt.Errorf("reserve and sign: %w", err)
	}

	result := SubmitResult{
		TransactionHash: tx.TransactionHash,
		Address:         tx.Address,
		Nonce:           tx.Nonce,
	}

	_, err = adapter.Submit(ctx, tx.RawTransaction)
	if err == nil {
		if err := r.store.MarkBroadcast(ctx, tx.ID, r.now().UTC()); err != nil {
			r.logs.Warnw("failed to mark transaction broadcast", "hash", tx.TransactionHash, "error", err)
		}
		result.Broadcast = true
		r.metrics.RecordSubmission(req.Key.String(), metrics.ResultBroadcast)
		r.logs.Infow("transaction broadcast",
			"chain", req.Key.String(),
			"address", tx.Address,
			"nonce", tx.Nonce,
			"hash", tx.TransactionHash)
		return result, nil
	}

	if !chain.IsFatal(err) {
		if recErr := r.store.RecordSubmitFailure(ctx, tx.ID, 1, err.Error()); recErr != nil {
			r.logs.Warnw("failed to record submit failure", "hash", tx.TransactionHash, "error", recErr)
		}
		r.metrics.RecordSubmission(req.Key.String(), metrics.ResultDeferred)
		r.logs.Warnw("broadcast deferred to resubmission",
			"chain", req.Key.String(),
			"address", tx.Address,
			"nonce", tx.Nonce,
			"hash", tx.TransactionHash,
			"error", err)
		return result, nil
	}

	r.metrics.RecordSubmission(req.Key.String(), metrics.ResultFailed)
	r.logs.Errorw("broadcast rejected",
		"chain", req.Key.String(),
		"address", tx.Address,
		"nonce", tx.Nonce,
		"hash", tx.TransactionHash,
		"error", err)

	refunded, failErr := failTransaction(ctx, r.store, tx, err.Error())
	if failErr != nil {
		// still PENDING and unbroadcast, the Resubmitter retires it
		return SubmitResult{}, errors.Join(fmt.Errorf("submit %s: %w: %w", tx.TransactionHash, ErrLedgerRowCommitted, err), failErr)
	}
	r.metrics.RecordTransitions(req.Key.String(), string(chain.StatusError), 1)
	if refunded {
		r.metrics.RecordRefunds(req.Key.String(), 1)
		return SubmitResult{}, fmt.Errorf("submit %s: %w: %w", tx.TransactionHash, ErrRefundScheduled, err)
	}
	return SubmitResult{}, fmt.Errorf("submit %s: %w: %w", tx.TransactionHash, ErrLedgerRowCommitted, err)
}
