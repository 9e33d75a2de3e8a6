package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"

	"github.com/google/uuid"
)

// refundNamespace derives refund event ids. A reference is charged once, so
// every refund path for it yields the same id and the outbox keeps only the first.
var refundNamespace = uuid.MustParse("6f1f4c6e-5b7a-4c39-9d0f-2a4de1d1a7b3")

func newEvent(kind, id string, payload any) (repository.Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return repository.Event{}, fmt.Errorf("marshal %s event: %w", kind, err)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return repository.Event{
		ID:        id,
		Kind:      kind,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func refundID(table, id string) string {
	return uuid.NewSHA1(refundNamespace, []byte(table+"/"+id)).String()
}

func refundEvent(r Refund) (repository.Event, error) {
	return newEvent(KindRefund, refundID(r.ReferenceTable, r.ReferenceID), r)
}

// transitionEvents builds the status event and one refund per referenced row
// for rows that actually left PENDING. Rows already terminal never reach here,
// so a replayed step emits nothing.
func transitionEvents(key chain.Key, address string, to chain.Status, reason string, changed []repository.Transaction) ([]repository.Event, int, error) {
	if len(changed) == 0 {
		return nil, 0, nil
	}

	hashes := make([]string, 0, len(changed))
	for _, tx := range changed {
		hashes = append(hashes, tx.TransactionHash)
	}

	status, err := newEvent(KindTransactionStatus, "", StatusChanged{
		Chain:     key.Chain,
		ChainType: key.Type,
		Address:   address,
		Status:    to,
		Hashes:    hashes,
	})
	if err != nil {
		return nil, 0, err
	}
	events := []repository.Event{status}

	if !to.Refundable() {
		return events, 0, nil
	}

	refunds := 0
	for _, tx := range changed {
		if !tx.HasReference() {
			continue
		}
		e, err := refundEvent(Refund{
			ReferenceTable:  tx.ReferenceTable,
			ReferenceID:     tx.ReferenceID,
			TransactionHash: tx.TransactionHash,
			Status:          to,
			Reason:          reason,
		})
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
		refunds++
	}

	return events, refunds, nil
}

// failTransaction moves one row to ERROR and schedules its refund in the same
// database transaction. It reports whether a refund was written.
func failTransaction(ctx context.Context, store repository.Store, tx repository.Transaction, reason string) (bool, error) {
	refunded := false
	err := store.Atomic(ctx, func(s repository.Store) error {
		changed, err := s.TransitionStatus(ctx, repository.TransitionQuery{
			Key:     tx.Key(),
			Address: tx.Address,
			Hashes:  []string{tx.TransactionHash},
		}, chain.StatusError, reason)
		if err != nil {
			return err
		}

		events, refunds, err := transitionEvents(tx.Key(), tx.Address, chain.StatusError, reason, changed)
		if err != nil {
			return err
		}
		refunded = refunds > 0
		return s.InsertEvents(ctx, events)
	})
	if err != nil {
		return false, fmt.Errorf("fail transaction %s: %w", tx.TransactionHash, err)
	}
	return refunded, nil
}
