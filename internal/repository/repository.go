package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoWalletAvailable   = errors.New("no wallet available")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrNonceConflict       = errors.New("wallet nonce changed outside the lock")
	ErrWatermarkRegression = errors.New("wallet watermark would move backwards")
	ErrInvalidReference    = errors.New("reference table and id must be set together")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrEndpointNotFound    = errors.New("endpoint not found")
)

var _ Store = (*Repository)(nil)

type Repository struct {
	db *db.GormDB
}

func NewRepository(gdb *db.GormDB) *Repository {
	return &Repository{
		db: gdb,
	}
}

// MigrateAndSeed creates the relay tables and inserts the seed wallets that do not exist yet.
func (r *Repository) MigrateAndSeed(ctx context.Context, wallets []Wallet) error {
	err := r.db.MigrateModels(&Wallet{}, &Transaction{}, &Endpoint{}, &Event{})
	if err != nil {
		return fmt.Errorf("migrate table(s): %w", err)
	}

	for i := range wallets {
		if wallets[i].Status == "" {
			wallets[i].Status = WalletActive
		}
		if wallets[i].UsageTimestamp.IsZero() {
			wallets[i].UsageTimestamp = time.Unix(0, 0).UTC()
		}
	}

	err = r.db.Seed(ctx, &wallets)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	return nil
}

func (r *Repository) Atomic(ctx context.Context, fn func(s Store) error) error {
	return r.db.Conn().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: db.New(tx)})
	})
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.Conn().WithContext(ctx)
}

// AcquireWallet locks the requested wallet, or the least recently used active
// wallet of the chain when address is empty. The lock is held until the
// surrounding transaction ends.
func (r *Repository) AcquireWallet(ctx context.Context, key chain.Key, address string) (Wallet, error) {
	var wallet Wallet

	q := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("chain = ? AND chain_type = ? AND status = ?", key.Chain, key.Type, WalletActive)
	if address != "" {
		q = q.Where("LOWER(address) = LOWER(?)", address)
	} else {
		q = q.Order("usage_timestamp ASC")
	}

	err := q.First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Wallet{}, fmt.Errorf("%w: %s", ErrNoWalletAvailable, key)
		}
		return Wallet{}, fmt.Errorf("select wallet: %w", err)
	}

	return wallet, nil
}

// ReserveNonce returns the wallet's next nonce and increments it. The wallet
// must have been locked by AcquireWallet in the same transaction.
func (r *Repository) ReserveNonce(ctx context.Context, w *Wallet) (uint64, error) {
	nonce := w.NextNonce
	now := time.Now().UTC()

	res := r.conn(ctx).
		Model(&Wallet{}).
		Where("id = ? AND next_nonce = ?", w.ID, nonce).
		Updates(map[string]any{
			"next_nonce":      gorm.Expr("next_nonce + 1"),
			"usage_timestamp": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("increment nonce: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return 0, fmt.Errorf("%w: wallet %d", ErrNonceConflict, w.ID)
	}

	w.NextNonce = nonce + 1
	w.UsageTimestamp = now

	return nonce, nil
}

func (r *Repository) LockWallet(ctx context.Context, id uint64) (Wallet, error) {
	var wallet Wallet
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Wallet{}, fmt.Errorf("%w: %d", ErrWalletNotFound, id)
		}
		return Wallet{}, fmt.Errorf("lock wallet: %w", err)
	}
	return wallet, nil
}

func (r *Repository) ListActiveWallets(ctx context.Context, key chain.Key) ([]Wallet, error) {
	wallets := []Wallet{}
	err := r.conn(ctx).
		Where("chain = ? AND chain_type = ? AND status = ?", key.Chain, key.Type, WalletActive).
		Order("id").
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

// AdvanceWallet moves the reconciliation watermark forward. It never lowers
// last_parsed_block or last_processed_nonce.
func (r *Repository) AdvanceWallet(ctx context.Context, id uint64, lastParsedBlock uint64, lastProcessedNonce int64) error {
	res := r.conn(ctx).
		Model(&Wallet{}).
		Where("id = ? AND last_parsed_block <= ?", id, lastParsedBlock).
		Updates(map[string]any{
			"last_parsed_block":    lastParsedBlock,
			"last_processed_nonce": gorm.Expr("GREATEST(last_processed_nonce, ?)", lastProcessedNonce),
		})
	if res.Error != nil {
		return fmt.Errorf("advance wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: wallet %d to block %d", ErrWatermarkRegression, id, lastParsedBlock)
	}
	return nil
}

func (r *Repository) InsertTransaction(ctx context.Context, tx *Transaction) error {
	if err := NormalizeTransaction(tx); err != nil {
		return err
	}

	if err := r.conn(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// TransitionStatus moves the PENDING rows matching q to the terminal status and
// returns exactly the rows it changed. Rows already terminal are left alone, so
// re-applying the same input is a no-op.
func (r *Repository) TransitionStatus(ctx context.Context, q TransitionQuery, to chain.Status, reason string) ([]Transaction, error) {
	if !chain.CanTransition(chain.StatusPending, to) {
		return nil, fmt.Errorf("%w: to %s", ErrInvalidTransition, to)
	}

	hashes := chain.NormalizeHashes(q.Hashes)
	if len(hashes) == 0 {
		return nil, nil
	}

	rows := []Transaction{}
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("chain = ? AND chain_type = ? AND LOWER(address) = LOWER(?)", q.Key.Chain, q.Key.Type, q.Address).
		Where("transaction_hash IN ? AND transaction_status = ?", hashes, chain.StatusPending).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select pending transactions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	err = r.conn(ctx).
		Model(&Transaction{}).
		Where("id IN ? AND transaction_status = ?", ids, chain.StatusPending).
		Updates(map[string]any{
			"transaction_status": to,
			"last_error":         reason,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update transaction status: %w", err)
	}

	for i := range rows {
		rows[i].TransactionStatus = to
		rows[i].LastError = reason
	}

	return rows, nil
}

func (r *Repository) ListPending(ctx context.Context, key chain.Key, address string, sinceNonce uint64) ([]Transaction, error) {
	txs := []Transaction{}
	err := r.conn(ctx).
		Where("chain = ? AND chain_type = ? AND LOWER(address) = LOWER(?)", key.Chain, key.Type, address).
		Where("transaction_status = ? AND nonce >= ?", chain.StatusPending, sinceNonce).
		Order("nonce").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("list pending transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) ListByHashes(ctx context.Context, hashes []string) ([]Transaction, error) {
	txs := []Transaction{}
	normalized := chain.NormalizeHashes(hashes)
	if len(normalized) == 0 {
		return txs, nil
	}

	err := r.conn(ctx).Where("transaction_hash IN ?", normalized).Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("get transactions by hash: %w", err)
	}
	return txs, nil
}

func (r *Repository) ListByReference(ctx context.Context, table, id string) ([]Transaction, error) {
	txs := []Transaction{}
	err := r.conn(ctx).
		Where("reference_table = ? AND reference_id = ?", table, id).
		Order("create_time").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("get transactions by reference: %w", err)
	}
	return txs, nil
}

// ListUnbroadcast returns PENDING rows that were committed but never accepted by a node.
func (r *Repository) ListUnbroadcast(ctx context.Context, key chain.Key, createdBefore time.Time, limit int) ([]Transaction, error) {
	txs := []Transaction{}
	err := r.conn(ctx).
		Where("chain = ? AND chain_type = ? AND transaction_status = ?", key.Chain, key.Type, chain.StatusPending).
		Where("broadcast_at IS NULL AND create_time < ?", createdBefore).
		Order("address, nonce").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("list unbroadcast transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) MarkBroadcast(ctx context.Context, id uint64, at time.Time) error {
	err := r.conn(ctx).
		Model(&Transaction{}).
		Where("id = ?", id).
		Update("broadcast_at", at).Error
	if err != nil {
		return fmt.Errorf("mark broadcast: %w", err)
	}
	return nil
}

func (r *Repository) RecordSubmitFailure(ctx context.Context, id uint64, attempts int, reason string) error {
	err := r.conn(ctx).
		Model(&Transaction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"submit_attempts": attempts,
			"last_error":      reason,
		}).Error
	if err != nil {
		return fmt.Errorf("record submit failure: %w", err)
	}
	return nil
}

func (r *Repository) InsertEvents(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	// ids are deterministic for refunds, an event already written is kept
	if err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&events).Error; err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func (r *Repository) ListUndispatchedEvents(ctx context.Context, limit int) ([]Event, error) {
	events := []Event{}
	err := r.conn(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list undispatched events: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventsDispatched(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.conn(ctx).
		Model(&Event{}).
		Where("id IN ?", ids).
		Update("dispatched_at", at).Error
	if err != nil {
		return fmt.Errorf("mark events dispatched: %w", err)
	}
	return nil
}

func (r *Repository) GetEndpoint(ctx context.Context, key chain.Key) (Endpoint, error) {
	var endpoint Endpoint
	err := r.conn(ctx).
		Where("chain = ? AND chain_type = ?", key.Chain, key.Type).
		First(&endpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Endpoint{}, fmt.Errorf("%w: %s", ErrEndpointNotFound, key)
		}
		return Endpoint{}, fmt.Errorf("get endpoint: %w", err)
	}
	return endpoint, nil
}

// NormalizeTransaction validates the reference pair and fills ledger defaults.
func NormalizeTransaction(tx *Transaction) error {
	if (tx.ReferenceTable == "") != (tx.ReferenceID == "") {
		return ErrInvalidReference
	}
	tx.TransactionHash = chain.NormalizeHash(tx.TransactionHash)
	if tx.TransactionStatus == "" {
		tx.TransactionStatus = chain.StatusPending
	}
	return nil
}
