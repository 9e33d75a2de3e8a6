package core

import (
	"context"
	"fmt"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"

	"go.uber.org/zap"
)

// Service is the entry point of the submission API. It routes paid submissions
// through the SpendCoordinator and serves ledger reads.
type Service struct {
	logs    *zap.SugaredLogger
	store   repository.Store
	relayer *Relayer
	spend   *SpendCoordinator
}

// NewService is a constructor function for the Service type. spend may be nil
// when no credit ledger is configured; paid submissions are then rejected.
func NewService(logger *zap.SugaredLogger, store repository.Store, relayer *Relayer, spend *SpendCoordinator) *Service {
	return &Service{
		logs:    logger,
		store:   store,
		relayer: relayer,
		spend:   spend,
	}
}

// Submit relays req. With a non-empty charge the credits are taken first and
// refunded if the transaction never makes it.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, charge *ChargeRequest) (SubmitResult, error) {
	if charge == nil {
		return s.relayer.Submit(ctx, req)
	}
	if s.spend == nil {
		return SubmitResult{}, fmt.Errorf("%w: no credit ledger configured", ErrInvalidCharge)
	}

	charge.ReferenceTable = req.ReferenceTable
	charge.ReferenceID = req.ReferenceID

	var result SubmitResult
	err := s.spend.Run(ctx, *charge, func(ctx context.Context) error {
		var err error
		result, err = s.relayer.Submit(ctx, req)
		return err
	})
	if err != nil {
		return SubmitResult{}, err
	}
	return result, nil
}

// GetTransactions returns the ledger rows for hashes. Unknown hashes are skipped.
func (s *Service) GetTransactions(ctx context.Context, hashes []string) ([]TransactionRecord, error) {
	txs, err := s.store.ListByHashes(ctx, chain.NormalizeHashes(hashes))
	if err != nil {
		return nil, fmt.Errorf("list transactions by hash: %w", err)
	}

	s.logs.Infow("transactions fetched from db", "requested", len(hashes), "found", len(txs))
	return toRecords(txs), nil
}

// GetByReference returns every ledger row created for one domain object.
func (s *Service) GetByReference(ctx context.Context, table, id string) ([]TransactionRecord, error) {
	if table == "" || id == "" {
		return nil, ErrInvalidReference
	}

	txs, err := s.store.ListByReference(ctx, table, id)
	if err != nil {
		return nil, fmt.Errorf("list transactions by reference: %w", err)
	}
	return toRecords(txs), nil
}
