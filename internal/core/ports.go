package core

import (
	"context"
	"math/big"

	"chainrelay/internal/chain"
	"chainrelay/internal/indexer"
	"chainrelay/internal/repository"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Adapter signs and broadcasts for one chain. Implementations never touch the ledger.
//
//counterfeiter:generate -o fake -fake-name Adapter . Adapter
type Adapter interface {
	Key() chain.Key
	Sign(ctx context.Context, wallet repository.Wallet, payload string, nonce uint64) (chain.SignedTx, error)
	Submit(ctx context.Context, raw string) (string, error)
}

//counterfeiter:generate -o fake -fake-name BalanceReader . BalanceReader
type BalanceReader interface {
	Balance(ctx context.Context, wallet repository.Wallet) (*big.Int, error)
}

//counterfeiter:generate -o fake -fake-name Indexer . Indexer
type Indexer interface {
	Key() chain.Key
	SafeHeight(ctx context.Context) (uint64, error)
	Outgoing(ctx context.Context, address string, from, to uint64) ([]indexer.Transfer, error)
	Incoming(ctx context.Context, address string, from, to uint64) ([]indexer.Transfer, error)
}

//counterfeiter:generate -o fake -fake-name Publisher . Publisher
type Publisher interface {
	Publish(ctx context.Context, kind, id string, data []byte) error
}

//counterfeiter:generate -o fake -fake-name Credits . Credits
type Credits interface {
	Charge(ctx context.Context, req ChargeRequest) error
}
