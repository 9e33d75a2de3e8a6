package substrate

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"

	"github.com/cenkalti/backoff/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// Service signs and submits extrinsics on one Substrate chain.
type Service struct {
	logs    *zap.SugaredLogger
	client  Client
	key     chain.Key
	profile Profile
	policy  RetryPolicy
	genesis types.Hash

	mu          sync.RWMutex
	meta        *types.Metadata
	specVersion types.U32
}

func WithRetryPolicy(p RetryPolicy) func(s *Service) {
	return func(s *Service) {
		s.policy = p
	}
}

// Dial connects to url and loads the chain's genesis hash and metadata.
func Dial(ctx context.Context, logger *zap.SugaredLogger, key chain.Key, url string, profile Profile, opts ...func(s *Service)) (*Service, error) {
	client, err := newRPCClient(url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", key, chain.Retryable(err))
	}
	return NewService(ctx, logger, key, client, profile, opts...)
}

// NewService fails when the chain's genesis hash or metadata cannot be loaded.
func NewService(ctx context.Context, logger *zap.SugaredLogger, key chain.Key, client Client, profile Profile, opts ...func(s *Service)) (*Service, error) {
	s := &Service{
		logs:    logger,
		client:  client,
		key:     key,
		profile: profile,
		policy:  DefaultRetryPolicy,
	}

	for _, opt := range opts {
		opt(s)
	}

	genesis, err := withRetry(ctx, s, "genesis hash", func() (types.Hash, error) {
		return s.client.GetBlockHash(0)
	})
	if err != nil {
		return nil, fmt.Errorf("load genesis hash of %s: %w", key, err)
	}
	s.genesis = genesis

	if _, err := s.runtimeVersion(ctx); err != nil {
		return nil, fmt.Errorf("load runtime of %s: %w", key, err)
	}

	s.logs.Infow("substrate chain ready", "chain", key.String(), "profile", profile.Name, "ss58", profile.SS58Prefix, "specVersion", s.specVersion)

	return s, nil
}

func (s *Service) Key() chain.Key {
	return s.key
}

// Sign wraps the SCALE-encoded call in payload into a mortal extrinsic signed
// by the wallet seed at the reserved nonce.
func (s *Service) Sign(ctx context.Context, wallet repository.Wallet, payload string, nonce uint64) (chain.SignedTx, error) {
	kp, err := s.keyringPair(wallet)
	if err != nil {
		return chain.SignedTx{}, err
	}

	rv, err := s.runtimeVersion(ctx)
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("runtime version: %w", err)
	}

	call, err := s.decodeCall(payload)
	if err != nil {
		return chain.SignedTx{}, err
	}

	header, err := withRetry(ctx, s, "latest header", func() (*types.Header, error) {
		return s.client.GetHeaderLatest()
	})
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("latest header: %w", err)
	}

	era, birth := MortalEra(uint64(header.Number), s.profile.EraPeriod)
	blockHash, err := withRetry(ctx, s, "birth block hash", func() (types.Hash, error) {
		return s.client.GetBlockHash(birth)
	})
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("block hash %d: %w", birth, err)
	}

	ext := types.NewExtrinsic(call)
	err = ext.Sign(kp, types.SignatureOptions{
		BlockHash:          blockHash,
		Era:                types.ExtrinsicEra{IsMortalEra: true, AsMortalEra: era},
		GenesisHash:        s.genesis,
		Nonce:              types.NewUCompactFromUInt(nonce),
		SpecVersion:        rv.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: rv.TransactionVersion,
	})
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("%w: sign extrinsic: %w", chain.ErrInvalidKey, err)
	}

	encoded, err := codec.Encode(ext)
	if err != nil {
		return chain.SignedTx{}, fmt.Errorf("encode extrinsic: %w", err)
	}

	return chain.SignedTx{
		Hash:  extrinsicHash(encoded),
		Raw:   codec.HexEncodeToString(encoded),
		Nonce: nonce,
	}, nil
}

// Submit broadcasts an encoded extrinsic. The returned hash is the blake2b-256
// of the extrinsic bytes, the same value indexers report.
func (s *Service) Submit(ctx context.Context, raw string) (string, error) {
	encoded, err := codec.HexDecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", chain.ErrInvalidPayload, err)
	}
	hash := extrinsicHash(encoded)

	_, err = withRetry(ctx, s, "submit extrinsic", func() (types.Hash, error) {
		return s.client.SubmitExtrinsic(raw)
	})
	if err != nil {
		if errors.Is(err, chain.ErrAlreadyKnown) {
			s.logs.Infow("extrinsic already in pool", "chain", s.key.String(), "hash", hash)
			return hash, nil
		}
		return "", fmt.Errorf("submit extrinsic %s: %w", hash, err)
	}

	return hash, nil
}

// Balance reads the free balance of the wallet from System.Account.
func (s *Service) Balance(ctx context.Context, wallet repository.Wallet) (*big.Int, error) {
	kp, err := s.keyringPair(wallet)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	meta := s.meta
	s.mu.RUnlock()

	storageKey, err := types.CreateStorageKey(meta, "System", "Account", kp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("account storage key: %w", err)
	}

	var info types.AccountInfo
	found, err := withRetry(ctx, s, "account info", func() (bool, error) {
		return s.client.GetStorageLatest(storageKey, &info)
	})
	if err != nil {
		return nil, fmt.Errorf("account info: %w", err)
	}
	if !found || info.Data.Free.Int == nil {
		return big.NewInt(0), nil
	}

	return new(big.Int).Set(info.Data.Free.Int), nil
}

func (s *Service) keyringPair(wallet repository.Wallet) (signature.KeyringPair, error) {
	kp, err := signature.KeyringPairFromSecret(strings.TrimSpace(wallet.Seed), s.profile.SS58Prefix)
	if err != nil {
		return signature.KeyringPair{}, fmt.Errorf("%w: wallet %d: %w", chain.ErrInvalidKey, wallet.ID, err)
	}
	if kp.Address != wallet.Address {
		return signature.KeyringPair{}, fmt.Errorf("%w: wallet %d seed derives %s", chain.ErrInvalidKey, wallet.ID, kp.Address)
	}
	return kp, nil
}

// runtimeVersion reloads metadata whenever the runtime was upgraded.
func (s *Service) runtimeVersion(ctx context.Context) (*types.RuntimeVersion, error) {
	rv, err := withRetry(ctx, s, "runtime version", func() (*types.RuntimeVersion, error) {
		return s.client.GetRuntimeVersionLatest()
	})
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	current := s.meta != nil && s.specVersion == rv.SpecVersion
	s.mu.RUnlock()
	if current {
		return rv, nil
	}

	meta, err := withRetry(ctx, s, "metadata", func() (*types.Metadata, error) {
		return s.client.GetMetadataLatest()
	})
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	s.mu.Lock()
	s.meta = meta
	s.specVersion = rv.SpecVersion
	s.mu.Unlock()

	return rv, nil
}

func (s *Service) decodeCall(payload string) (types.Call, error) {
	b, err := codec.HexDecodeString(strings.TrimSpace(payload))
	if err != nil {
		return types.Call{}, fmt.Errorf("%w: %w", chain.ErrInvalidPayload, err)
	}
	if len(b) < 2 {
		return types.Call{}, fmt.Errorf("%w: call shorter than its index", chain.ErrInvalidPayload)
	}

	call := types.Call{
		CallIndex: types.CallIndex{SectionIndex: b[0], MethodIndex: b[1]},
		Args:      types.Args(b[2:]),
	}

	s.mu.RLock()
	meta := s.meta
	s.mu.RUnlock()

	if meta != nil && meta.IsMetadataV14 {
		for _, pallet := range meta.AsMetadataV14.Pallets {
			if uint8(pallet.Index) == call.CallIndex.SectionIndex {
				if !pallet.HasCalls {
					return types.Call{}, fmt.Errorf("%w: pallet %s has no calls", chain.ErrInvalidPayload, pallet.Name)
				}
				return call, nil
			}
		}
		return types.Call{}, fmt.Errorf("%w: unknown pallet index %d", chain.ErrInvalidPayload, call.CallIndex.SectionIndex)
	}

	return call, nil
}

func extrinsicHash(encoded []byte) string {
	sum := blake2b.Sum256(encoded)
	return codec.HexEncodeToString(sum[:])
}

func withRetry[T any](ctx context.Context, s *Service, op string, fn func() (T, error)) (T, error) {
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

	return chain.Retryable(err)
}
