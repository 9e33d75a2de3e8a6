package core_test

import (
	"context"
	"errors"

	"chainrelay/internal/core"
	"chainrelay/internal/core/fake"
	"chainrelay/internal/repository"
	"chainrelay/internal/repository/memory"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Dispatcher", func() {
	var (
		store         *memory.Store
		fakePublisher *fake.Publisher
		ctx           context.Context

		dispatcher *core.Dispatcher
	)

	BeforeEach(func() {
		store = memory.NewStore()
		fakePublisher = new(fake.Publisher)
		ctx = context.Background()

		Expect(store.InsertEvents(ctx, []repository.Event{
			{ID: "e-1", Kind: core.KindTransactionStatus, Payload: []byte(`{"status":"CONFIRMED"}`)},
			{ID: "e-2", Kind: core.KindRefund, Payload: []byte(`{"referenceId":"42"}`)},
		})).To(Succeed())

		dispatcher = core.NewDispatcher(zap.NewNop().Sugar(), store, fakePublisher, nil, 10)
	})

	It("should publish every event under its id and mark it dispatched", func() {
		n, err := dispatcher.Flush(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))

		_, kind, id, data := fakePublisher.PublishArgsForCall(1)
		Expect(kind).To(Equal(core.KindRefund))
		Expect(id).To(Equal("e-2"))
		Expect(data).To(MatchJSON(`{"referenceId":"42"}`))

		pending, _ := store.ListUndispatchedEvents(ctx, 10)
		Expect(pending).To(BeEmpty())
	})

	It("should retry a failed event on the next flush with the same id", func() {
		fakePublisher.PublishReturnsOnCall(1, errors.New("nats: timeout"))

		n, err := dispatcher.Flush(ctx)
		Expect(err).To(HaveOccurred())
		Expect(n).To(Equal(1))

		n, err = dispatcher.Flush(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))

		_, _, id, _ := fakePublisher.PublishArgsForCall(2)
		Expect(id).To(Equal("e-2"))
	})

	It("should fall back to working defaults for zero settings", func() {
		d := core.NewDispatcher(zap.NewNop().Sugar(), store, fakePublisher, nil, 0)
		Expect(d.BatchSize()).To(Equal(100))

		runCtx, cancel := context.WithCancel(ctx)
		fakePublisher.PublishStub = func(context.Context, string, string, []byte) error {
			cancel()
			return nil
		}
		Expect(d.Run(runCtx, 0)).To(Succeed())
	})

	It("should stop when the context ends", func() {
		runCtx, cancel := context.WithCancel(ctx)
		fakePublisher.PublishStub = func(context.Context, string, string, []byte) error {
			cancel()
			return nil
		}

		Expect(dispatcher.Run(runCtx, 10)).To(Succeed())
		Expect(fakePublisher.PublishCallCount()).To(Equal(2))
	})
})
