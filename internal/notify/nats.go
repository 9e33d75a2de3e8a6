package notify

import (
	"fmt"

	"chainrelay/internal/config"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Connect dials NATS and returns a JetStream context when the server offers
// one. js is nil for core NATS deployments.
func Connect(cfg config.NATS, name string, logger *zap.SugaredLogger) (*nats.Conn, nats.JetStreamContext, error) {
	logger.Infow("connecting to NATS", "url", cfg.URL)

	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(cfg.ConnectTimeout),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warnw("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infow("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Infow("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	if !cfg.JetStream {
		return conn, nil, nil
	}

	js, err := conn.JetStream()
	if err != nil {
		logger.Warnw("JetStream not available, using core NATS", "error", err)
		return conn, nil, nil
	}

	return conn, js, nil
}
