package repository

import (
	"context"
	"time"

	"chainrelay/internal/chain"
)

// Store is the persistence contract of the relay. Atomic runs fn inside one
// database transaction; every Store handed to fn shares that transaction.
type Store interface {
	Atomic(ctx context.Context, fn func(s Store) error) error

	AcquireWallet(ctx context.Context, key chain.Key, address string) (Wallet, error)
	ReserveNonce(ctx context.Context, w *Wallet) (uint64, error)
	LockWallet(ctx context.Context, id uint64) (Wallet, error)
	ListActiveWallets(ctx context.Context, key chain.Key) ([]Wallet, error)
	AdvanceWallet(ctx context.Context, id uint64, lastParsedBlock uint64, lastProcessedNonce int64) error

	InsertTransaction(ctx context.Context, tx *Transaction) error
	TransitionStatus(ctx context.Context, q TransitionQuery, to chain.Status, reason string) ([]Transaction, error)
	ListPending(ctx context.Context, key chain.Key, address string, sinceNonce uint64) ([]Transaction, error)
	ListByHashes(ctx context.Context, hashes []string) ([]Transaction, error)
	ListByReference(ctx context.Context, table, id string) ([]Transaction, error)
	ListUnbroadcast(ctx context.Context, key chain.Key, createdBefore time.Time, limit int) ([]Transaction, error)
	MarkBroadcast(ctx context.Context, id uint64, at time.Time) error
	RecordSubmitFailure(ctx context.Context, id uint64, attempts int, reason string) error

	InsertEvents(ctx context.Context, events []Event) error
	ListUndispatchedEvents(ctx context.Context, limit int) ([]Event, error)
	MarkEventsDispatched(ctx context.Context, ids []string, at time.Time) error

	GetEndpoint(ctx context.Context, key chain.Key) (Endpoint, error)
}
