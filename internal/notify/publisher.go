package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher sends outbox events to <prefix>.<kind>. With JetStream the event id
// is the message id, so a republished event is dropped by the stream.
type Publisher struct {
	logs   *zap.SugaredLogger
	conn   Conn
	js     JetStream
	prefix string
}

// NewPublisher takes a nil js for core NATS.
func NewPublisher(logger *zap.SugaredLogger, conn Conn, js JetStream, prefix string) *Publisher {
	return &Publisher{
		logs:   logger,
		conn:   conn,
		js:     js,
		prefix: prefix,
	}
}

func (p *Publisher) Subject(kind string) string {
	if p.prefix == "" {
		return kind
	}
	return p.prefix + "." + kind
}

func (p *Publisher) Publish(ctx context.Context, kind, id string, data []byte) error {
	subject := p.Subject(kind)

	if p.js != nil {
		_, err := p.js.Publish(subject, data, nats.MsgId(id), nats.Context(ctx))
		if err == nil {
			return nil
		}
		if !errors.Is(err, nats.ErrNoStreamResponse) && !errors.Is(err, nats.ErrNoResponders) {
			return fmt.Errorf("jetstream publish %s: %w", subject, err)
		}
		p.logs.Warnw("no stream bound to subject, using core NATS", "subject", subject)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
