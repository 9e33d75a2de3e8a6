package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/core"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const codeInsufficientCredits = "INSUFFICIENT_CREDITS"

var ErrChargeRejected = errors.New("credit charge rejected")

type chargeReply struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// CreditClient charges credits over NATS request/reply.
type CreditClient struct {
	logs    *zap.SugaredLogger
	conn    Conn
	subject string
	timeout time.Duration
}

func NewCreditClient(logger *zap.SugaredLogger, conn Conn, subject string, timeout time.Duration) *CreditClient {
	return &CreditClient{
		logs:    logger,
		conn:    conn,
		subject: subject,
		timeout: timeout,
	}
}

func (c *CreditClient) Charge(ctx context.Context, req core.ChargeRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal charge: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.conn.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if unconfirmed(err) {
			c.logs.Warnw("charge reply not received", "referenceTable", req.ReferenceTable, "referenceId", req.ReferenceID, "error", err)
			return fmt.Errorf("request %s: %w: %w", c.subject, core.ErrChargeUnconfirmed, err)
		}
		return fmt.Errorf("request %s: %w", c.subject, err)
	}

	var reply chargeReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return fmt.Errorf("decode charge reply: %w", err)
	}

	if reply.OK {
		c.logs.Infow("credits charged", "productCode", req.ProductCode, "projectId", req.ProjectID, "referenceId", req.ReferenceID)
		return nil
	}
	if reply.Code == codeInsufficientCredits {
		return core.ErrInsufficientCredits
	}
	return fmt.Errorf("%w: %s %s", ErrChargeRejected, reply.Code, reply.Error)
}

// unconfirmed reports errors after which the credit ledger may have received the
// charge. No responders is excluded: the server saw no subscriber at all.
func unconfirmed(err error) bool {
	return errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
