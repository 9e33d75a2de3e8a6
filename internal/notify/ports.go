package notify

import (
	"context"

	"github.com/nats-io/nats.go"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Conn is the part of *nats.Conn the relay uses.
//
//counterfeiter:generate -o fake -fake-name Conn . Conn
type Conn interface {
	Publish(subj string, data []byte) error
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

//counterfeiter:generate -o fake -fake-name JetStream . JetStream
type JetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}
