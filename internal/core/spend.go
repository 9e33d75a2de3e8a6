package core

import (
	"context"
	"errors"
	"fmt"

	"chainrelay/internal/repository"

	"go.uber.org/zap"
)

// SpendCoordinator charges credits before a chain-affecting action. Refunds for
// actions that produced a ledger row are written later by whoever moves that
// row to FAILED or ERROR. The coordinator only refunds actions that failed
// before a ledger row existed, and charges whose outcome it could not learn.
type SpendCoordinator struct {
	logs    *zap.SugaredLogger
	credits Credits
	store   repository.Store
}

func NewSpendCoordinator(logger *zap.SugaredLogger, credits Credits, store repository.Store) *SpendCoordinator {
	return &SpendCoordinator{
		logs:    logger,
		credits: credits,
		store:   store,
	}
}

func (c *SpendCoordinator) Run(ctx context.Context, charge ChargeRequest, action func(ctx context.Context) error) error {
	if !charge.Valid() {
		return ErrInvalidCharge
	}

	if err := c.credits.Charge(ctx, charge); err != nil {
		err = fmt.Errorf("charge %s for %s/%s: %w", charge.ProductCode, charge.ReferenceTable, charge.ReferenceID, err)
		if errors.Is(err, ErrChargeUnconfirmed) {
			// the ledger may have charged after we stopped waiting
			return c.refund(ctx, charge, err)
		}
		return err
	}

	err := action(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRefundScheduled) || errors.Is(err, ErrLedgerRowCommitted) {
		return err
	}
	return c.refund(ctx, charge, err)
}

func (c *SpendCoordinator) refund(ctx context.Context, charge ChargeRequest, cause error) error {
	e, err := refundEvent(Refund{
		ReferenceTable: charge.ReferenceTable,
		ReferenceID:    charge.ReferenceID,
		Reason:         cause.Error(),
	})
	if err == nil {
		err = c.store.InsertEvents(context.WithoutCancel(ctx), []repository.Event{e})
	}
	if err != nil {
		c.logs.Errorw("failed to schedule refund",
			"referenceTable", charge.ReferenceTable,
			"referenceId", charge.ReferenceID,
			"error", err,
			"alert", true)
		return errors.Join(cause, err)
	}

	c.logs.Infow("refund scheduled for failed action",
		"referenceTable", charge.ReferenceTable,
		"referenceId", charge.ReferenceID,
		"error", cause)
	return fmt.Errorf("%w: %w", ErrRefundScheduled, cause)
}
