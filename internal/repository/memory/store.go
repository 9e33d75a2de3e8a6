// Package memory is a process-local repository.Store. Atomic serializes callers
// on one mutex and restores a snapshot when fn fails.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"
)

var ErrDuplicateNonce = errors.New("duplicate nonce for wallet")

var _ repository.Store = (*Store)(nil)

type state struct {
	mu           sync.Mutex
	wallets      []repository.Wallet
	txs          []repository.Transaction
	events       []repository.Event
	endpoints    []repository.Endpoint
	nextWalletID uint64
	nextTxID     uint64
}

type snapshot struct {
	wallets      []repository.Wallet
	txs          []repository.Transaction
	events       []repository.Event
	nextWalletID uint64
	nextTxID     uint64
}

type Store struct {
	st   *state
	inTx bool
}

func NewStore() *Store {
	return &Store{st: &state{}}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.st.mu.Lock()
	return s.st.mu.Unlock
}

func (s *Store) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	snap := snapshot{
		wallets:      slices.Clone(s.st.wallets),
		txs:          slices.Clone(s.st.txs),
		events:       slices.Clone(s.st.events),
		nextWalletID: s.st.nextWalletID,
		nextTxID:     s.st.nextTxID,
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := fn(&Store{st: s.st, inTx: true}); err != nil {
		s.st.wallets = snap.wallets
		s.st.txs = snap.txs
		s.st.events = snap.events
		s.st.nextWalletID = snap.nextWalletID
		s.st.nextTxID = snap.nextTxID
		return err
	}
	return nil
}

// AddWallet registers a wallet and returns it with its assigned id.
func (s *Store) AddWallet(w repository.Wallet) repository.Wallet {
	defer s.lock()()
	s.st.nextWalletID++
	w.ID = s.st.nextWalletID
	if w.Status == "" {
		w.Status = repository.WalletActive
	}
	if w.LastProcessedNonce == 0 && w.NextNonce == 0 {
		w.LastProcessedNonce = -1
	}
	s.st.wallets = append(s.st.wallets, w)
	return w
}

func (s *Store) AddEndpoint(e repository.Endpoint) {
	defer s.lock()()
	s.st.endpoints = append(s.st.endpoints, e)
}

func (s *Store) Wallet(id uint64) (repository.Wallet, bool) {
	defer s.lock()()
	for _, w := range s.st.wallets {
		if w.ID == id {
			return w, true
		}
	}
	return repository.Wallet{}, false
}

func (s *Store) Transactions() []repository.Transaction {
	defer s.lock()()
	return slices.Clone(s.st.txs)
}

func (s *Store) Events() []repository.Event {
	defer s.lock()()
	return slices.Clone(s.st.events)
}

func (s *Store) walletIndex(id uint64) int {
	for i := range s.st.wallets {
		if s.st.wallets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) AcquireWallet(ctx context.Context, key chain.Key, address string) (repository.Wallet, error) {
	defer s.lock()()

	best := -1
	for i, w := range s.st.wallets {
		if w.Key() != key || w.Status != repository.WalletActive {
			continue
		}
		if address != "" {
			if strings.EqualFold(w.Address, address) {
				best = i
				break
			}
			continue
		}
		if best == -1 || w.UsageTimestamp.Before(s.st.wallets[best].UsageTimestamp) {
			best = i
		}
	}
	if best == -1 {
		return repository.Wallet{}, fmt.Errorf("%w: %s", repository.ErrNoWalletAvailable, key)
	}
	return s.st.wallets[best], nil
}

func (s *Store) ReserveNonce(ctx context.Context, w *repository.Wallet) (uint64, error) {
	defer s.lock()()

	i := s.walletIndex(w.ID)
	if i == -1 || s.st.wallets[i].NextNonce != w.NextNonce {
		return 0, fmt.Errorf("%w: wallet %d", repository.ErrNonceConflict, w.ID)
	}

	nonce := w.NextNonce
	now := time.Now().UTC()
	s.st.wallets[i].NextNonce = nonce + 1
	s.st.wallets[i].UsageTimestamp = now
	w.NextNonce = nonce + 1
	w.UsageTimestamp = now
	return nonce, nil
}

func (s *Store) LockWallet(ctx context.Context, id uint64) (repository.Wallet, error) {
	defer s.lock()()
	i := s.walletIndex(id)
	if i == -1 {
		return repository.Wallet{}, fmt.Errorf("%w: %d", repository.ErrWalletNotFound, id)
	}
	return s.st.wallets[i], nil
}

func (s *Store) ListActiveWallets(ctx context.Context, key chain.Key) ([]repository.Wallet, error) {
	defer s.lock()()
	out := []repository.Wallet{}
	for _, w := range s.st.wallets {
		if w.Key() == key && w.Status == repository.WalletActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) AdvanceWallet(ctx context.Context, id uint64, lastParsedBlock uint64, lastProcessedNonce int64) error {
	defer s.lock()()
	i := s.walletIndex(id)
	if i == -1 || s.st.wallets[i].LastParsedBlock > lastParsedBlock {
		return fmt.Errorf("%w: wallet %d to block %d", repository.ErrWatermarkRegression, id, lastParsedBlock)
	}
	s.st.wallets[i].LastParsedBlock = lastParsedBlock
	s.st.wallets[i].LastProcessedNonce = max(s.st.wallets[i].LastProcessedNonce, lastProcessedNonce)
	return nil
}

func (s *Store) InsertTransaction(ctx context.Context, tx *repository.Transaction) error {
	if err := repository.NormalizeTransaction(tx); err != nil {
		return err
	}

	defer s.lock()()
	for _, existing := range s.st.txs {
		if existing.Key() == tx.Key() && strings.EqualFold(existing.Address, tx.Address) && existing.Nonce == tx.Nonce {
			return fmt.Errorf("insert transaction: %w: %s nonce %d", ErrDuplicateNonce, tx.Address, tx.Nonce)
		}
	}

	s.st.nextTxID++
	tx.ID = s.st.nextTxID
	now := time.Now().UTC()
	if tx.CreateTime.IsZero() {
		tx.CreateTime = now
	}
	tx.UpdateTime = now
	s.st.txs = append(s.st.txs, *tx)
	return nil
}

func (s *Store) TransitionStatus(ctx context.Context, q repository.TransitionQuery, to chain.Status, reason string) ([]repository.Transaction, error) {
	if !chain.CanTransition(chain.StatusPending, to) {
		return nil, fmt.Errorf("%w: to %s", repository.ErrInvalidTransition, to)
	}
	hashes := chain.NormalizeHashes(q.Hashes)
	if len(hashes) == 0 {
		return nil, nil
	}

	defer s.lock()()
	var changed []repository.Transaction
	for i := range s.st.txs {
		tx := &s.st.txs[i]
		if tx.Key() != q.Key || !strings.EqualFold(tx.Address, q.Address) {
			continue
		}
		if tx.TransactionStatus != chain.StatusPending || !slices.Contains(hashes, tx.TransactionHash) {
			continue
		}
		tx.TransactionStatus = to
		tx.LastError = reason
		tx.UpdateTime = time.Now().UTC()
		changed = append(changed, *tx)
	}
	return changed, nil
}

func (s *Store) ListPending(ctx context.Context, key chain.Key, address string, sinceNonce uint64) ([]repository.Transaction, error) {
	defer s.lock()()
	out := []repository.Transaction{}
	for _, tx := range s.st.txs {
		if tx.Key() == key && strings.EqualFold(tx.Address, address) &&
			tx.TransactionStatus == chain.StatusPending && tx.Nonce >= sinceNonce {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nonce < out[j].Nonce })
	return out, nil
}

func (s *Store) ListByHashes(ctx context.Context, hashes []string) ([]repository.Transaction, error) {
	normalized := chain.NormalizeHashes(hashes)
	defer s.lock()()
	out := []repository.Transaction{}
	for _, tx := range s.st.txs {
		if slices.Contains(normalized, tx.TransactionHash) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) ListByReference(ctx context.Context, table, id string) ([]repository.Transaction, error) {
	defer s.lock()()
	out := []repository.Transaction{}
	for _, tx := range s.st.txs {
		if tx.ReferenceTable == table && tx.ReferenceID == id {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) ListUnbroadcast(ctx context.Context, key chain.Key, createdBefore time.Time, limit int) ([]repository.Transaction, error) {
	defer s.lock()()
	out := []repository.Transaction{}
	for _, tx := range s.st.txs {
		if tx.Key() == key && tx.TransactionStatus == chain.StatusPending &&
			tx.BroadcastAt == nil && tx.CreateTime.Before(createdBefore) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Nonce < out[j].Nonce
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) MarkBroadcast(ctx context.Context, id uint64, at time.Time) error {
	defer s.lock()()
	for i := range s.st.txs {
		if s.st.txs[i].ID == id {
			t := at
			s.st.txs[i].BroadcastAt = &t
			return nil
		}
	}
	return nil
}

func (s *Store) RecordSubmitFailure(ctx context.Context, id uint64, attempts int, reason string) error {
	defer s.lock()()
	for i := range s.st.txs {
		if s.st.txs[i].ID == id {
			s.st.txs[i].SubmitAttempts = attempts
			s.st.txs[i].LastError = reason
			return nil
		}
	}
	return nil
}

func (s *Store) InsertEvents(ctx context.Context, events []repository.Event) error {
	defer s.lock()()
	now := time.Now().UTC()
	for _, e := range events {
		if s.hasEvent(e.ID) {
			continue
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		s.st.events = append(s.st.events, e)
	}
	return nil
}

func (s *Store) hasEvent(id string) bool {
	for _, e := range s.st.events {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) ListUndispatchedEvents(ctx context.Context, limit int) ([]repository.Event, error) {
	defer s.lock()()
	out := []repository.Event{}
	for _, e := range s.st.events {
		if e.DispatchedAt == nil {
			out = append(out, e)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkEventsDispatched(ctx context.Context, ids []string, at time.Time) error {
	defer s.lock()()
	for i := range s.st.events {
		if slices.Contains(ids, s.st.events[i].ID) {
			t := at
			s.st.events[i].DispatchedAt = &t
		}
	}
	return nil
}

func (s *Store) GetEndpoint(ctx context.Context, key chain.Key) (repository.Endpoint, error) {
	defer s.lock()()
	for _, e := range s.st.endpoints {
		if e.Chain == key.Chain && e.ChainType == key.Type {
			return e, nil
		}
	}
	return repository.Endpoint{}, fmt.Errorf("%w: %s", repository.ErrEndpointNotFound, key)
}
