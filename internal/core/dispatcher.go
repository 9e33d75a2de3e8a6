package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/metrics"
	"chainrelay/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultOutboxBatch    = 100
	defaultOutboxInterval = 5 * time.Second
)

// Dispatcher publishes committed outbox events. Delivery is at least once: an
// event published right before a crash is published again, under the same id.
type Dispatcher struct {
	logs      *zap.SugaredLogger
	store     repository.Store
	publisher Publisher
	metrics   *metrics.Metrics
	batchSize int
	now       func() time.Time
}

func NewDispatcher(logger *zap.SugaredLogger, store repository.Store, publisher Publisher, m *metrics.Metrics, batchSize int) *Dispatcher {
	if batchSize <= 0 {
		batchSize = defaultOutboxBatch
	}
	return &Dispatcher{
		logs:      logger,
		store:     store,
		publisher: publisher,
		metrics:   m,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// BatchSize is the effective number of events taken per flush.
func (d *Dispatcher) BatchSize() int {
	return d.batchSize
}

// Flush publishes one batch and returns how many events were marked dispatched.
func (d *Dispatcher) Flush(ctx context.Context) (int, error) {
	events, err := d.store.ListUndispatchedEvents(ctx, d.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list undispatched events: %w", err)
	}
	d.metrics.SetOutboxBacklog(len(events))
	if len(events) == 0 {
		return 0, nil
	}

	var (
		published = make([]string, 0, len(events))
		errs      []error
	)
	for _, e := range events {
		err := d.publisher.Publish(ctx, e.Kind, e.ID, e.Payload)
		d.metrics.RecordPublish(e.Kind, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish event %s: %w", e.ID, err))
			continue
		}
		published = append(published, e.ID)
	}

	if err := d.store.MarkEventsDispatched(ctx, published, d.now().UTC()); err != nil {
		errs = append(errs, err)
		published = published[:0]
	}

	if len(errs) > 0 {
		d.logs.Warnw("outbox flush incomplete", "published", len(published), "failed", len(events)-len(published), "error", errors.Join(errs...))
	}

	return len(published), errors.Join(errs...)
}

// Run flushes every interval until ctx is done. A full batch is followed by an
// immediate flush.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultOutboxInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := d.Flush(ctx)
		if err != nil && ctx.Err() == nil {
			d.logs.Errorw("outbox flush failed", "error", err)
		}
		if n == d.batchSize {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
