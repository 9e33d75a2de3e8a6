package ethereum_test

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"math/big"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/ethereum"
	"chainrelay/internal/ethereum/fake"
	"chainrelay/internal/repository"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func unsignedPayload(data types.TxData) string {
	raw, err := types.NewTx(data).MarshalBinary()
	Expect(err).NotTo(HaveOccurred())
	return hexutil.Encode(raw)
}

func decode(raw string) *types.Transaction {
	b, err := hexutil.Decode(raw)
	Expect(err).NotTo(HaveOccurred())
	tx := new(types.Transaction)
	Expect(tx.UnmarshalBinary(b)).To(Succeed())
	return tx
}

var _ = Describe("EthService", func() {
	var (
		service    *ethereum.EthService
		fakeClient *fake.EthClient
		ctx        context.Context
		chainID    *big.Int
		privateKey *ecdsa.PrivateKey
		wallet     repository.Wallet
		to         common.Address
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		fakeClient = new(fake.EthClient)
		chainID = big.NewInt(int64(chain.Moonbeam))
		to = common.HexToAddress("0x00000000000000000000000000000000000000aa")

		privateKey, err = crypto.GenerateKey()
		Expect(err).NotTo(HaveOccurred())
		wallet = repository.Wallet{
			ID:      1,
			Address: crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
			Seed:    "0x" + hex.EncodeToString(crypto.FromECDSA(privateKey)),
		}

		service = ethereum.NewEthService(zap.NewNop().Sugar(),
			chain.NewKey(chain.Moonbeam, chain.TypeEVM), fakeClient, chainID,
			ethereum.WithRetryPolicy(ethereum.RetryPolicy{Interval: time.Millisecond, Retries: 2}))
	})

	Describe("Sign", func() {
		var (
			payload string
			signed  chain.SignedTx
			err     error
		)

		JustBeforeEach(func() {
			signed, err = service.Sign(ctx, wallet, payload, 7)
		})

		When("the legacy payload leaves gas to the node", func() {
			BeforeEach(func() {
				payload = unsignedPayload(&types.LegacyTx{To: &to, Value: big.NewInt(10)})
				fakeClient.SuggestGasPriceReturns(big.NewInt(1_000_000_000), nil)
				fakeClient.EstimateGasReturns(21000, nil)
			})

			It("should sign with the reserved nonce and suggested gas", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(signed.Nonce).To(Equal(uint64(7)))

				tx := decode(signed.Raw)
				Expect(tx.Nonce()).To(Equal(uint64(7)))
				Expect(tx.Gas()).To(Equal(uint64(21000)))
				Expect(tx.GasPrice()).To(Equal(big.NewInt(1_000_000_000)))
				Expect(tx.Hash().Hex()).To(Equal(signed.Hash))

				from, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
				Expect(err).NotTo(HaveOccurred())
				Expect(from.Hex()).To(Equal(wallet.Address))

				Expect(fakeClient.EstimateGasCallCount()).To(Equal(1))
				_, msg := fakeClient.EstimateGasArgsForCall(0)
				Expect(msg.From.Hex()).To(Equal(wallet.Address))
				Expect(*msg.To).To(Equal(to))
			})
		})

		When("the dynamic fee payload is complete", func() {
			BeforeEach(func() {
				payload = unsignedPayload(&types.DynamicFeeTx{
					ChainID:   chainID,
					To:        &to,
					Gas:       50000,
					GasTipCap: big.NewInt(2),
					GasFeeCap: big.NewInt(100),
				})
			})

			It("should not ask the node for gas", func() {
				Expect(err).NotTo(HaveOccurred())
				tx := decode(signed.Raw)
				Expect(tx.Type()).To(Equal(uint8(types.DynamicFeeTxType)))
				Expect(tx.ChainId()).To(Equal(chainID))
				Expect(tx.Nonce()).To(Equal(uint64(7)))
				Expect(fakeClient.SuggestGasPriceCallCount()).To(BeZero())
				Expect(fakeClient.EstimateGasCallCount()).To(BeZero())
			})
		})

		When("the payload targets another chain", func() {
			BeforeEach(func() {
				payload = unsignedPayload(&types.DynamicFeeTx{ChainID: big.NewInt(1), To: &to, Gas: 21000, GasTipCap: big.NewInt(1), GasFeeCap: big.NewInt(1)})
			})

			It("should reject it", func() {
				Expect(err).To(MatchError(chain.ErrInvalidPayload))
			})
		})

		When("the payload is not a transaction", func() {
			BeforeEach(func() {
				payload = "0xdeadbeef"
			})

			It("should return ErrInvalidPayload", func() {
				Expect(err).To(MatchError(chain.ErrInvalidPayload))
			})
		})

		When("the seed is corrupted", func() {
			BeforeEach(func() {
				payload = unsignedPayload(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)})
				wallet.Seed = "not-a-key"
			})

			It("should return ErrInvalidKey", func() {
				Expect(err).To(MatchError(chain.ErrInvalidKey))
				Expect(chain.Alertable(err)).To(BeTrue())
			})
		})

		When("the seed belongs to another address", func() {
			BeforeEach(func() {
				payload = unsignedPayload(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)})
				wallet.Address = to.Hex()
			})

			It("should return ErrInvalidKey", func() {
				Expect(err).To(MatchError(chain.ErrInvalidKey))
			})
		})
	})

	Describe("Submit", func() {
		var (
			signed chain.SignedTx
			hash   string
			err    error
		)

		BeforeEach(func() {
			var signErr error
			signed, signErr = service.Sign(ctx, wallet, unsignedPayload(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)}), 3)
			Expect(signErr).NotTo(HaveOccurred())
		})

		JustBeforeEach(func() {
			hash, err = service.Submit(ctx, signed.Raw)
		})

		When("the node accepts the transaction", func() {
			It("should return its hash", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(hash).To(Equal(signed.Hash))
				Expect(fakeClient.SendTransactionCallCount()).To(Equal(1))
				_, tx := fakeClient.SendTransactionArgsForCall(0)
				Expect(tx.Hash().Hex()).To(Equal(signed.Hash))
			})
		})

		When("the node already knows the transaction", func() {
			BeforeEach(func() {
				fakeClient.SendTransactionReturns(errors.New("already known"))
			})

			It("should treat it as broadcast", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(hash).To(Equal(signed.Hash))
			})
		})

		When("the node already processed the nonce", func() {
			BeforeEach(func() {
				fakeClient.SendTransactionReturns(errors.New("nonce too low: next nonce 12, tx nonce 7"))
			})

			It("should report the consumed nonce as fatal", func() {
				Expect(err).To(MatchError(chain.ErrNonceConsumed))
				Expect(chain.IsFatal(err)).To(BeTrue())
				Expect(fakeClient.SendTransactionCallCount()).To(Equal(1))
			})
		})

		When("the wallet cannot pay for gas", func() {
			BeforeEach(func() {
				fakeClient.SendTransactionReturns(errors.New("insufficient funds for gas * price + value"))
			})

			It("should fail fatally without retrying", func() {
				Expect(err).To(MatchError(chain.ErrInsufficientBalance))
				Expect(chain.IsFatal(err)).To(BeTrue())
				Expect(fakeClient.SendTransactionCallCount()).To(Equal(1))
			})
		})

		When("the endpoint is unreachable", func() {
			BeforeEach(func() {
				fakeClient.SendTransactionReturns(errors.New("dial tcp 10.0.0.1:8545: connect: connection refused"))
			})

			It("should retry and then report a retryable error", func() {
				Expect(chain.IsRetryable(err)).To(BeTrue())
				Expect(fakeClient.SendTransactionCallCount()).To(Equal(3))
			})
		})

		When("a transient error clears up", func() {
			BeforeEach(func() {
				fakeClient.SendTransactionReturnsOnCall(0, errors.New("i/o timeout"))
				fakeClient.SendTransactionReturnsOnCall(1, nil)
			})

			It("should succeed on the retry", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(fakeClient.SendTransactionCallCount()).To(Equal(2))
			})
		})
	})

	Describe("Balance", func() {
		It("should read the latest balance", func() {
			fakeClient.BalanceAtReturns(big.NewInt(42), nil)

			balance, err := service.Balance(ctx, wallet)
			Expect(err).NotTo(HaveOccurred())
			Expect(balance).To(Equal(big.NewInt(42)))

			_, account, block := fakeClient.BalanceAtArgsForCall(0)
			Expect(account.Hex()).To(Equal(wallet.Address))
			Expect(block).To(BeNil())
		})

		It("should reject a malformed address", func() {
			wallet.Address = "nope"
			_, err := service.Balance(ctx, wallet)
			Expect(err).To(MatchError(chain.ErrInvalidPayload))
		})
	})
})
