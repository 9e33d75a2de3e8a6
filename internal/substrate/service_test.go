package substrate_test

import (
	"context"
	"errors"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"
	"chainrelay/internal/substrate"
	"chainrelay/internal/substrate/fake"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

var _ = Describe("MortalEra", func() {
	DescribeTable("encoding",
		func(current, period uint64, first, second byte, birth uint64) {
			era, b := substrate.MortalEra(current, period)
			Expect(era.First).To(Equal(first))
			Expect(era.Second).To(Equal(second))
			Expect(b).To(Equal(birth))
		},
		Entry("64 block window", uint64(1000), uint64(64), byte(0x85), byte(0x02), uint64(1000)),
		Entry("period rounded up to a power of two", uint64(7), uint64(10), byte(0x73), byte(0x00), uint64(7)),
		Entry("period below the minimum", uint64(5), uint64(1), byte(0x11), byte(0x00), uint64(5)),
		Entry("quantized phase at the maximum period", uint64(100000), uint64(1<<20), byte(0xaf), byte(0x86), uint64(100000)),
	)
})

var _ = Describe("ProfileFor", func() {
	It("should resolve the built-in address format", func() {
		p, err := substrate.ProfileFor(chain.Kilt)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.SS58Prefix).To(Equal(uint16(38)))
		Expect(p.EraPeriod).To(Equal(uint64(64)))
	})

	It("should apply overrides", func() {
		p, err := substrate.ProfileFor(chain.Kilt, substrate.Profile{Chain: chain.Kilt, SS58Prefix: 38, EraPeriod: 128})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.EraPeriod).To(Equal(uint64(128)))
	})

	It("should fail fast for unknown chains", func() {
		_, err := substrate.ProfileFor(chain.Chain(999))
		Expect(err).To(MatchError(substrate.ErrUnknownChain))
	})
})

var _ = Describe("Service", func() {
	var (
		fakeClient *fake.Client
		service    *substrate.Service
		ctx        context.Context
		key        chain.Key
		profile    substrate.Profile
		wallet     repository.Wallet
		err        error
	)

	BeforeEach(func() {
		ctx = context.Background()
		fakeClient = new(fake.Client)
		key = chain.NewKey(chain.Westend, chain.TypeSubstrate)
		profile, err = substrate.ProfileFor(chain.Westend)
		Expect(err).NotTo(HaveOccurred())

		wallet = repository.Wallet{ID: 3, Seed: signature.TestKeyringPairAlice.URI, Address: signature.TestKeyringPairAlice.Address}

		fakeClient.GetBlockHashReturns(types.NewHash([]byte("0123456789abcdef0123456789abcdef")), nil)
		fakeClient.GetRuntimeVersionLatestReturns(&types.RuntimeVersion{SpecVersion: 9430, TransactionVersion: 22}, nil)
		fakeClient.GetMetadataLatestReturns(&types.Metadata{}, nil)
		fakeClient.GetHeaderLatestReturns(&types.Header{Number: 1000}, nil)
	})

	JustBeforeEach(func() {
		service, err = substrate.NewService(ctx, zap.NewNop().Sugar(), key, fakeClient, profile,
			substrate.WithRetryPolicy(substrate.RetryPolicy{Interval: time.Millisecond, Retries: 1}))
	})

	When("the node is unreachable at construction", func() {
		BeforeEach(func() {
			fakeClient.GetBlockHashReturns(types.Hash{}, errors.New("connection refused"))
		})

		It("should fail fast", func() {
			Expect(err).To(HaveOccurred())
			Expect(chain.IsRetryable(err)).To(BeTrue())
			Expect(service).To(BeNil())
		})
	})

	Describe("Sign", func() {
		It("should sign a mortal extrinsic at the reserved nonce", func() {
			Expect(err).NotTo(HaveOccurred())

			signed, err := service.Sign(ctx, wallet, "0x0400ff", 12)
			Expect(err).NotTo(HaveOccurred())
			Expect(signed.Nonce).To(Equal(uint64(12)))

			raw, err := codec.HexDecodeString(signed.Raw)
			Expect(err).NotTo(HaveOccurred())
			sum := blake2b.Sum256(raw)
			Expect(signed.Hash).To(Equal(codec.HexEncodeToString(sum[:])))

			calls := fakeClient.GetBlockHashCallCount()
			Expect(fakeClient.GetBlockHashArgsForCall(0)).To(Equal(uint64(0)))
			Expect(fakeClient.GetBlockHashArgsForCall(calls - 1)).To(Equal(uint64(1000)))
		})

		It("should reject a seed that does not match the wallet address", func() {
			Expect(err).NotTo(HaveOccurred())
			wallet.Address = signature.TestKeyringPairAlice.Address + "x"

			_, err := service.Sign(ctx, wallet, "0x0400", 1)
			Expect(err).To(MatchError(chain.ErrInvalidKey))
		})

		It("should reject a truncated call", func() {
			Expect(err).NotTo(HaveOccurred())

			_, err := service.Sign(ctx, wallet, "0x04", 1)
			Expect(err).To(MatchError(chain.ErrInvalidPayload))
		})

		It("should reload metadata after a runtime upgrade", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(fakeClient.GetMetadataLatestCallCount()).To(Equal(1))

			fakeClient.GetRuntimeVersionLatestReturns(&types.RuntimeVersion{SpecVersion: 9431, TransactionVersion: 22}, nil)
			_, err := service.Sign(ctx, wallet, "0x0400", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(fakeClient.GetMetadataLatestCallCount()).To(Equal(2))
		})
	})

	Describe("Submit", func() {
		var raw string

		JustBeforeEach(func() {
			Expect(err).NotTo(HaveOccurred())
			signed, err := service.Sign(ctx, wallet, "0x0400", 2)
			Expect(err).NotTo(HaveOccurred())
			raw = signed.Raw
		})

		It("should return the extrinsic hash", func() {
			hash, err := service.Submit(ctx, raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(hash).To(HavePrefix("0x"))
			Expect(hash).To(HaveLen(66))
			Expect(fakeClient.SubmitExtrinsicArgsForCall(0)).To(Equal(raw))
		})

		It("should treat an extrinsic already in the pool as submitted", func() {
			fakeClient.SubmitExtrinsicReturns(types.Hash{}, errors.New("1013: Transaction Already Imported"))

			hash, err := service.Submit(ctx, raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(hash).To(HaveLen(66))
		})

		It("should report an outdated nonce as consumed", func() {
			fakeClient.SubmitExtrinsicReturns(types.Hash{}, errors.New("1010: Invalid Transaction: Transaction is outdated"))

			_, err := service.Submit(ctx, raw)
			Expect(err).To(MatchError(chain.ErrNonceConsumed))
			Expect(chain.IsFatal(err)).To(BeTrue())
		})

		It("should surface insufficient balance as fatal", func() {
			fakeClient.SubmitExtrinsicReturns(types.Hash{}, errors.New("1010: Invalid Transaction: Inability to pay some fees , e.g. account balance too low"))

			_, err := service.Submit(ctx, raw)
			Expect(err).To(MatchError(chain.ErrInsufficientBalance))
			Expect(fakeClient.SubmitExtrinsicCallCount()).To(Equal(1))
		})
	})
})
