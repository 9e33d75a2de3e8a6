package indexer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chainrelay/internal/chain"

	"github.com/cenkalti/backoff/v4"
	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

var (
	ErrIndexerNotConfigured = errors.New("indexer not configured for chain")
	ErrInvalidRange         = errors.New("invalid block range")
)

// Client queries one chain's indexer. Ranges are half-open: (from, to].
type Client struct {
	logs          *zap.SugaredLogger
	gql           *graphql.Client
	key           chain.Key
	confirmations uint64
	pageSize      int
	policy        RetryPolicy
}

// New fails with ErrIndexerNotConfigured when cfg has no URL or an unknown chain type.
func New(logger *zap.SugaredLogger, cfg Config) (*Client, error) {
	if cfg.URL == "" || !cfg.Key.Type.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrIndexerNotConfigured, cfg.Key)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	policy := cfg.Retry
	if policy.Interval == 0 {
		policy = DefaultRetryPolicy
	}

	gql := graphql.NewClient(cfg.URL, graphql.WithHTTPClient(httpClient))
	gql.Log = func(s string) {
		logger.Debugw("indexer request", "chain", cfg.Key.String(), "detail", s)
	}

	return &Client{
		logs:          logger,
		gql:           gql,
		key:           cfg.Key,
		confirmations: cfg.Confirmations,
		pageSize:      pageSize,
		policy:        policy,
	}, nil
}

func (c *Client) Key() chain.Key {
	return c.key
}

// SafeHeight is the indexed head minus the confirmation depth.
func (c *Client) SafeHeight(ctx context.Context) (uint64, error) {
	var resp statusResponse
	if err := c.run(ctx, graphql.NewRequest(heightQuery), &resp); err != nil {
		return 0, fmt.Errorf("indexer height %s: %w", c.key, err)
	}

	height := resp.SquidStatus.Height
	if height < c.confirmations {
		return 0, nil
	}
	return height - c.confirmations, nil
}

// Outgoing returns transfers sent by address in blocks (from, to].
func (c *Client) Outgoing(ctx context.Context, address string, from, to uint64) ([]Transfer, error) {
	return c.transfers(ctx, Outgoing, address, from, to)
}

// Incoming returns transfers received by address in blocks (from, to].
func (c *Client) Incoming(ctx context.Context, address string, from, to uint64) ([]Transfer, error) {
	return c.transfers(ctx, Incoming, address, from, to)
}

func (c *Client) transfers(ctx context.Context, dir Direction, address string, from, to uint64) ([]Transfer, error) {
	if to < from {
		return nil, fmt.Errorf("%w: (%d, %d]", ErrInvalidRange, from, to)
	}
	if to == from {
		return []Transfer{}, nil
	}

	out := []Transfer{}
	for offset := 0; ; offset += c.pageSize {
		page, err := c.page(ctx, dir, address, from, to, offset)
		if err != nil {
			return nil, fmt.Errorf("indexer %s transfers %s (%d, %d]: %w", dir, c.key, from, to, err)
		}

		out = append(out, page...)
		if len(page) < c.pageSize {
			break
		}
	}

	return out, nil
}

func (c *Client) page(ctx context.Context, dir Direction, address string, from, to uint64, offset int) ([]Transfer, error) {
	var req *graphql.Request

	switch c.key.Type {
	case chain.TypeEVM:
		q := evmOutgoingQuery
		if dir == Incoming {
			q = evmIncomingQuery
		}
		req = graphql.NewRequest(q)
		req.Var("address", strings.ToLower(address))
	default:
		req = graphql.NewRequest(substrateTransfersQuery)
		req.Var("address", address)
		req.Var("type", string(dir))
	}
	req.Var("from", from)
	req.Var("to", to)
	req.Var("limit", c.pageSize)
	req.Var("offset", offset)

	if c.key.Type == chain.TypeEVM {
		var resp evmResponse
		if err := c.run(ctx, req, &resp); err != nil {
			return nil, err
		}

		transfers := make([]Transfer, 0, len(resp.Transactions))
		for _, tx := range resp.Transactions {
			transfers = append(transfers, Transfer{
				Hash:        chain.NormalizeHash(tx.Hash),
				BlockNumber: tx.BlockNumber,
				From:        tx.From,
				To:          tx.To,
				Value:       tx.Value,
				Nonce:       tx.Nonce,
				Direction:   dir,
				Status:      statusOf(tx.Status),
			})
		}
		return transfers, nil
	}

	var resp substrateResponse
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}

	transfers := make([]Transfer, 0, len(resp.Transfers))
	for _, t := range resp.Transfers {
		tr := Transfer{
			Hash:        chain.NormalizeHash(t.ExtrinsicHash),
			BlockNumber: t.BlockNumber,
			Value:       t.Amount,
			Fee:         t.Fee,
			Direction:   dir,
			Status:      statusOf(t.Status),
		}
		if dir == Outgoing {
			tr.From, tr.To = t.Account, t.Counterparty
		} else {
			tr.From, tr.To = t.Counterparty, t.Account
		}
		transfers = append(transfers, tr)
	}
	return transfers, nil
}

func (c *Client) run(ctx context.Context, req *graphql.Request, resp any) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(c.policy.Interval), c.policy.Retries)
	policyContext := backoff.WithContext(policy, ctx)

	operation := func() error {
		err := c.gql.Run(ctx, req, resp)
		if err != nil && errors.Is(err, context.Canceled) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, nextTry time.Duration) {
		c.logs.Warnw("indexer query failed", "chain", c.key.String(), "next try", nextTry.String(), "error", err)
	}

	if err := backoff.RetryNotify(operation, policyContext, notify); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return chain.Retryable(err)
	}
	return nil
}
