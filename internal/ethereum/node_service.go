package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"

	"github.com/cenkalti/backoff/v4"
	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

var ErrChainMismatch = errors.New("endpoint serves a different chain")

// EthService signs and broadcasts transactions on one EVM chain. It never
// touches the ledger.
type EthService struct {
	logs    *zap.SugaredLogger
	client  EthClient
	key     chain.Key
	chainID *big.Int
	signer  types.Signer
	policy  RetryPolicy
}

func WithRetryPolicy(p RetryPolicy) func(s *EthService) {
	return func(s *EthService) {
		s.policy = p
	}
}

func NewEthService(logger *zap.SugaredLogger, key chain.Key, client EthClient, chainID *big.Int, opts ...func(s *EthService)) *EthService {
	s := &EthService{
		logs:    logger,
		client:  client,
		key:     key,
		chainID: chainID,
		signer:  types.LatestSignerForChainID(chainID),
		policy:  DefaultRetryPolicy,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dial connects to the endpoint and checks that it serves key's chain id.
func Dial(ctx context.Context, logger *zap.SugaredLogger, key chain.Key, url string, opts ...func(s *EthService)) (*EthService, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", key, err)
	}

	s := NewEthService(logger, key, client, big.NewInt(int64(key.Chain)), opts...)

	chainID, err := withRetry(ctx, s, "chain id", func() (*big.Int, error) {
		return client.ChainID(ctx)
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("read chain id of %s: %w", key, err)
	}
	if chainID.Cmp(s.chainID) != 0 {
		client.Close()
		return nil, fmt.Errorf("%w: %s reports chain id %s", ErrChainMismatch, key, chainID)
	}

	return s, nil
}

func (s *EthService) Key() chain.Key {
	return s.key
}

// Sign rebuilds the unsigned payload with the reserved nonce, fills missing gas
// fields from the node and signs it with the wallet key.
func (s *EthService) Sign(ctx context.Context, wallet repository.Wallet, payload string, nonce uint64) (chain.SignedTx, error) {
	privateKey, from, err := walletKey(wallet)
	if err != nil {
		return chain.SignedTx{}, err
	}

	template, err := decodeTransaction(payload)
	if err != nil {
		return chain.SignedTx{}, err
	}

	txData, err := s.rebuild(ctx, from, template, nonce)
	if err != nil {
		return chain.SignedTx{}, err
	}

	signed, err := types.SignNewTx(privateKey, s.signer, txData)
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("%w: sign transaction: %w", chain.ErrInvalidKey, err)
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("encode signed transaction: %w", err)
	}

	return chain.SignedTx{
		Hash:  signed.Hash().Hex(),
		Raw:   hexutil.Encode(raw),
		Nonce: nonce,
	}, nil
}

// Submit broadcasts a signed transaction and returns its hash without waiting
// for inclusion. A node that already holds the transaction counts as success.
func (s *EthService) Submit(ctx context.Context, raw string) (string, error) {
	tx, err := decodeTransaction(raw)
	if err != nil {
		return "", err
	}
	hash := tx.Hash().Hex()

	_, err = withRetry(ctx, s, "send transaction", func() (struct{}, error) {
		return struct{}{}, s.client.SendTransaction(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, chain.ErrAlreadyKnown) {
			s.logs.Infow("transaction already known to node", "chain", s.key.String(), "hash", hash)
			return hash, nil
		}
		return "", fmt.Errorf("send transaction %s: %w", hash, err)
	}

	return hash, nil
}

// Balance returns the latest balance of the wallet in wei.
func (s *EthService) Balance(ctx context.Context, wallet repository.Wallet) (*big.Int, error) {
	if !common.IsHexAddress(wallet.Address) {
		return nil, fmt.Errorf("%w: address %q", chain.ErrInvalidPayload, wallet.Address)
	}

	return withRetry(ctx, s, "balance", func() (*big.Int, error) {
		return s.client.BalanceAt(ctx, common.HexToAddress(wallet.Address), nil)
	})
}

func (s *EthService) rebuild(ctx context.Context, from common.Address, template *types.Transaction, nonce uint64) (types.TxData, error) {
	// legacy templates carry no chain id until signed
	if id := template.ChainId(); template.Type() != types.LegacyTxType && id != nil && id.Sign() != 0 && id.Cmp(s.chainID) != 0 {
		return nil, fmt.Errorf("%w: payload chain id %s, want %s", chain.ErrInvalidPayload, id, s.chainID)
	}

	msg := geth.CallMsg{
		From:  from,
		To:    template.To(),
		Value: template.Value(),
		Data:  template.Data(),
	}

	switch template.Type() {
	case types.LegacyTxType:
		gasPrice := template.GasPrice()
		if gasPrice == nil || gasPrice.Sign() == 0 {
			suggested, err := withRetry(ctx, s, "gas price", func() (*big.Int, error) {
				return s.client.SuggestGasPrice(ctx)
			})
			if err != nil {
				return nil, fmt.Errorf("suggest gas price: %w", err)
			}
			gasPrice = suggested
		}
		msg.GasPrice = gasPrice

		gas, err := s.gasLimit(ctx, template, msg)
		if err != nil {
			return nil, err
		}

		return &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       template.To(),
			Value:    template.Value(),
			Data:     template.Data(),
		}, nil

	case types.DynamicFeeTxType:
		tip := template.GasTipCap()
		if tip == nil || tip.Sign() == 0 {
			suggested, err := withRetry(ctx, s, "gas tip cap", func() (*big.Int, error) {
				return s.client.SuggestGasTipCap(ctx)
			})
			if err != nil {
				return nil, fmt.Errorf("suggest gas tip cap: %w", err)
			}
			tip = suggested
		}

		feeCap := template.GasFeeCap()
		if feeCap == nil || feeCap.Sign() == 0 {
			gasPrice, err := withRetry(ctx, s, "gas price", func() (*big.Int, error) {
				return s.client.SuggestGasPrice(ctx)
			})
			if err != nil {
				return nil, fmt.Errorf("suggest gas price: %w", err)
			}
			feeCap = new(big.Int).Add(gasPrice, tip)
		}
		msg.GasTipCap = tip
		msg.GasFeeCap = feeCap

		gas, err := s.gasLimit(ctx, template, msg)
		if err != nil {
			return nil, err
		}

		return &types.DynamicFeeTx{
			ChainID:    s.chainID,
			Nonce:      nonce,
			GasTipCap:  tip,
			GasFeeCap:  feeCap,
			Gas:        gas,
			To:         template.To(),
			Value:      template.Value(),
			Data:       template.Data(),
			AccessList: template.AccessList(),
		}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported transaction type %d", chain.ErrInvalidPayload, template.Type())
	}
}

func (s *EthService) gasLimit(ctx context.Context, template *types.Transaction, msg geth.CallMsg) (uint64, error) {
	if template.Gas() != 0 {
		return template.Gas(), nil
	}

	gas, err := withRetry(ctx, s, "estimate gas", func() (uint64, error) {
		return s.client.EstimateGas(ctx, msg)
	})
	if err != nil {
		return 0, fmt.Errorf("estimate gas: %w", err)
	}
	return gas, nil
}

func walletKey(wallet repository.Wallet) (*ecdsa.PrivateKey, common.Address, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(wallet.Seed), "0x"))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("%w: wallet %d: %w", chain.ErrInvalidKey, wallet.ID, err)
	}

	from := crypto.PubkeyToAddress(privateKey.PublicKey)
	if !strings.EqualFold(from.Hex(), wallet.Address) {
		return nil, common.Address{}, fmt.Errorf("%w: wallet %d key derives %s", chain.ErrInvalidKey, wallet.ID, from.Hex())
	}

	return privateKey, from, nil
}

func decodeTransaction(payload string) (*types.Transaction, error) {
	raw, err := hexutil.Decode(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrInvalidPayload, err)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrInvalidPayload, err)
	}
	return tx, nil
}

func withRetry[T any](ctx context.Context, s *EthService, op string, fn func() (T, error)) (T, error) {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(s.policy.Interval), s.policy.Retries)
	policyContext := backoff.WithContext(policy, ctx)

	operation := func() (T, error) {
		res, err := fn()
		if err != nil {
			classified := classify(err)
			if !chain.IsRetryable(classified) {
				return res, backoff.Permanent(classified)
			}
			return res, classified
		}
		return res, nil
	}

	notify := func(err error, nextTry time.Duration) {
		s.logs.Warnw("node call failed", "chain", s.key.String(), "op", op, "next try", nextTry.String(), "error", err)
	}

	return backoff.RetryNotifyWithData(operation, policyContext, notify)
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	msg := strings.ToLower(err.Error())
	for _, ne := range nodeErrors {
		if strings.Contains(msg, ne.fragment) {
			return fmt.Errorf("%w: %w", ne.kind, err)
		}
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 429 || httpErr.StatusCode >= 500 {
			return chain.Retryable(err)
		}
		return fmt.Errorf("%w: %w", chain.ErrRejected, err)
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("%w: %w", chain.ErrRejected, err)
	}

	// transport failures: dial errors, timeouts, dropped connections
	return chain.Retryable(err)
}
