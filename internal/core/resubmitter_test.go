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

var _ = Describe("Resubmitter", func() {
	var (
		store       *memory.Store
		fakeAdapter *fake.Adapter
		ctx         context.Context
		key         chain.Key
		tx          repository.Transaction

		resubmitter *core.Resubmitter
		report      core.SweepReport
		err         error
	)

	BeforeEach(func() {
		store = memory.NewStore()
		fakeAdapter = new(fake.Adapter)
		ctx = context.Background()
		key = chain.NewKey(chain.Westend, chain.TypeSubstrate)

		fakeAdapter.KeyReturns(key)
		fakeAdapter.SubmitReturns("0xhash", nil)

		tx = repository.Transaction{
			Chain: key.Chain, ChainType: key.Type, Address: "5Grw", Nonce: 3,
			TransactionHash: hashFor(3), RawTransaction: "0xsigned",
			ReferenceTable: "space", ReferenceID: "7",
			CreateTime: time.Now().Add(-time.Hour),
		}

		resubmitter = core.NewResubmitter(zap.NewNop().Sugar(), store, []core.Adapter{fakeAdapter}, nil, core.ResubmitPolicy{
			GracePeriod: time.Minute,
			MaxAttempts: 3,
		})
	})

	JustBeforeEach(func() {
		Expect(store.InsertTransaction(ctx, &tx)).To(Succeed())
		report, err = resubmitter.Sweep(ctx)
	})

	It("should re-broadcast the stored raw transaction", func() {
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Broadcast).To(Equal(1))

		_, raw := fakeAdapter.SubmitArgsForCall(0)
		Expect(raw).To(Equal("0xsigned"))
		Expect(store.Transactions()[0].BroadcastAt).NotTo(BeNil())
	})

	It("should replace a zero grace period with the default", func() {
		r := core.NewResubmitter(zap.NewNop().Sugar(), store, nil, nil, core.ResubmitPolicy{})
		Expect(r.GracePeriod()).To(Equal(30 * time.Second))
	})

	When("the row is younger than the grace period", func() {
		BeforeEach(func() {
			tx.CreateTime = time.Now()
		})

		It("should leave it to the original submitter", func() {
			Expect(fakeAdapter.SubmitCallCount()).To(BeZero())
		})
	})

	When("the row was already broadcast", func() {
		BeforeEach(func() {
			at := time.Now()
			tx.BroadcastAt = &at
		})

		It("should skip it", func() {
			Expect(fakeAdapter.SubmitCallCount()).To(BeZero())
		})
	})

	When("the endpoint is still unreachable", func() {
		BeforeEach(func() {
			fakeAdapter.SubmitReturns("", chain.Retryable(errors.New("dial tcp: connection refused")))
		})

		It("should count the attempt and keep the row PENDING", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Deferred).To(Equal(1))

			row := store.Transactions()[0]
			Expect(row.TransactionStatus).To(Equal(chain.StatusPending))
			Expect(row.SubmitAttempts).To(Equal(1))
			Expect(row.LastError).To(ContainSubstring("connection refused"))
		})
	})

	When("the attempts are exhausted", func() {
		BeforeEach(func() {
			tx.SubmitAttempts = 2
			fakeAdapter.SubmitReturns("", chain.Retryable(errors.New("timeout")))
		})

		It("should give up with ERROR and a refund", func() {
			Expect(report.Errored).To(Equal(1))
			Expect(store.Transactions()[0].TransactionStatus).To(Equal(chain.StatusError))
			Expect(eventsOfKind(store, core.KindRefund)).To(HaveLen(1))
		})
	})

	When("an earlier attempt already used the nonce", func() {
		BeforeEach(func() {
			fakeAdapter.SubmitReturns("", fmt.Errorf("%w: nonce too low", chain.ErrNonceConsumed))
		})

		It("should mark the row broadcast and leave it to reconciliation", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Broadcast).To(Equal(1))

			row := store.Transactions()[0]
			Expect(row.TransactionStatus).To(Equal(chain.StatusPending))
			Expect(row.BroadcastAt).NotTo(BeNil())
			Expect(store.Events()).To(BeEmpty())
		})
	})

	When("the node rejects the transaction", func() {
		BeforeEach(func() {
			fakeAdapter.SubmitReturns("", fmt.Errorf("%w: bad signature", chain.ErrInvalidKey))
		})

		It("should fail the row on the first attempt", func() {
			Expect(report.Errored).To(Equal(1))
			Expect(store.Transactions()[0].TransactionStatus).To(Equal(chain.StatusError))
		})
	})
})
