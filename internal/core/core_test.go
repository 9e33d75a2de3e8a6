package core_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/core"
	"chainrelay/internal/core/fake"
	"chainrelay/internal/repository"
	"chainrelay/internal/repository/memory"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Service", func() {
	var (
		store       *memory.Store
		fakeAdapter *fake.Adapter
		fakeCredits *fake.Credits
		ctx         context.Context
		key         chain.Key

		service *core.Service
		req     core.SubmitRequest
		charge  *core.ChargeRequest
	)

	BeforeEach(func() {
		store = memory.NewStore()
		fakeAdapter = new(fake.Adapter)
		fakeCredits = new(fake.Credits)
		ctx = context.Background()
		key = chain.NewKey(chain.Astar, chain.TypeEVM)

		store.AddWallet(repository.Wallet{Chain: key.Chain, ChainType: key.Type, Address: "0xWallet"})
		fakeAdapter.KeyReturns(key)
		fakeAdapter.SignCalls(signWithNonce)

		logger := zap.NewNop().Sugar()
		relayer := core.NewRelayer(logger, store, []core.Adapter{fakeAdapter}, nil)
		service = core.NewService(logger, store, relayer, core.NewSpendCoordinator(logger, fakeCredits, store))

		req = core.SubmitRequest{Key: key, Payload: "0xpayload", ReferenceTable: "nft_mint", ReferenceID: "9"}
		charge = &core.ChargeRequest{ProductCode: "NFT_MINT", ProjectID: "p-1"}
	})

	Describe("Submit", func() {
		It("should relay unpaid submissions without charging", func() {
			res, err := service.Submit(ctx, req, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Nonce).To(BeZero())
			Expect(fakeCredits.ChargeCallCount()).To(BeZero())
		})

		It("should charge with the request reference", func() {
			_, err := service.Submit(ctx, req, charge)
			Expect(err).NotTo(HaveOccurred())

			_, sent := fakeCredits.ChargeArgsForCall(0)
			Expect(sent.ReferenceTable).To(Equal("nft_mint"))
			Expect(sent.ReferenceID).To(Equal("9"))
		})

		It("should refund exactly once when the node rejects a paid submission", func() {
			fakeAdapter.SubmitReturns("", fmt.Errorf("%w: execution reverted", chain.ErrRejected))

			_, err := service.Submit(ctx, req, charge)
			Expect(err).To(MatchError(core.ErrRefundScheduled))
			Expect(eventsOfKind(store, core.KindRefund)).To(HaveLen(1))
		})

		It("should leave the refund to the ledger once the row is committed", func() {
			rejected := fmt.Errorf("%w: execution reverted", chain.ErrRejected)
			fakeAdapter.SubmitReturns("", rejected)

			failures := 1
			flaky := &failingErrorTransition{Store: store, remaining: &failures}
			logger := zap.NewNop().Sugar()
			relayer := core.NewRelayer(logger, flaky, []core.Adapter{fakeAdapter}, nil)
			paid := core.NewService(logger, flaky, relayer, core.NewSpendCoordinator(logger, fakeCredits, flaky))

			_, err := paid.Submit(ctx, req, charge)
			Expect(err).To(MatchError(core.ErrLedgerRowCommitted))
			Expect(err).NotTo(MatchError(core.ErrRefundScheduled))
			Expect(eventsOfKind(store, core.KindRefund)).To(BeEmpty())

			txs := store.Transactions()
			Expect(txs).To(HaveLen(1))
			Expect(txs[0].TransactionStatus).To(Equal(chain.StatusPending))

			time.Sleep(time.Millisecond)
			resubmitter := core.NewResubmitter(logger, flaky, []core.Adapter{fakeAdapter}, nil, core.ResubmitPolicy{GracePeriod: time.Nanosecond})
			_, err = resubmitter.Sweep(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(store.Transactions()[0].TransactionStatus).To(Equal(chain.StatusError))
			Expect(eventsOfKind(store, core.KindRefund)).To(HaveLen(1))
		})

		It("should refund a paid submission that never signed", func() {
			fakeAdapter.SignCalls(nil)
			fakeAdapter.SignReturns(chain.SignedTx{}, fmt.Errorf("%w: not rlp", chain.ErrInvalidPayload))

			_, err := service.Submit(ctx, req, charge)
			Expect(err).To(MatchError(chain.ErrInvalidPayload))
			Expect(store.Transactions()).To(BeEmpty())
			Expect(eventsOfKind(store, core.KindRefund)).To(HaveLen(1))
		})
	})

	Describe("GetTransactions", func() {
		It("should match hashes regardless of case", func() {
			res, err := service.Submit(ctx, req, nil)
			Expect(err).NotTo(HaveOccurred())

			records, err := service.GetTransactions(ctx, []string{"0X" + res.TransactionHash[2:], hashFor(77)})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ReferenceID).To(Equal("9"))
			Expect(records[0].TransactionStatus).To(Equal(chain.StatusPending))
		})
	})

	Describe("GetByReference", func() {
		It("should require both halves of the reference", func() {
			_, err := service.GetByReference(ctx, "nft_mint", "")
			Expect(err).To(MatchError(core.ErrInvalidReference))
		})

		It("should list every row of the reference", func() {
			_, err := service.Submit(ctx, req, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Submit(ctx, req, nil)
			Expect(err).NotTo(HaveOccurred())

			records, err := service.GetByReference(ctx, "nft_mint", "9")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})
	})
})

// failingErrorTransition fails the next moves to ERROR, inside or outside Atomic.
type failingErrorTransition struct {
	repository.Store
	remaining *int
}

func (f *failingErrorTransition) Atomic(ctx context.Context, fn func(s repository.Store) error) error {
	return f.Store.Atomic(ctx, func(s repository.Store) error {
		return fn(&failingErrorTransition{Store: s, remaining: f.remaining})
	})
}

func (f *failingErrorTransition) TransitionStatus(ctx context.Context, q repository.TransitionQuery, to chain.Status, reason string) ([]repository.Transaction, error) {
	if to == chain.StatusError && *f.remaining > 0 {
		*f.remaining--
		return nil, errors.New("connection reset")
	}
	return f.Store.TransitionStatus(ctx, q, to, reason)
}
