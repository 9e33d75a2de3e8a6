package notify_test

import (
	"context"
	"errors"

	"chainrelay/internal/core"
	"chainrelay/internal/notify"
	"chainrelay/internal/notify/fake"

	"github.com/nats-io/nats.go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Publisher", func() {
	var (
		fakeConn *fake.Conn
		fakeJS   *fake.JetStream
		ctx      context.Context

		publisher *notify.Publisher
		err       error
	)

	BeforeEach(func() {
		fakeConn = new(fake.Conn)
		fakeJS = new(fake.JetStream)
		ctx = context.Background()
		fakeJS.PublishReturns(&nats.PubAck{Stream: "RELAY", Sequence: 1}, nil)
	})

	JustBeforeEach(func() {
		err = publisher.Publish(ctx, core.KindRefund, "event-1", []byte(`{"referenceId":"42"}`))
	})

	When("JetStream is available", func() {
		BeforeEach(func() {
			publisher = notify.NewPublisher(zap.NewNop().Sugar(), fakeConn, fakeJS, "chainrelay")
		})

		It("should publish to the prefixed subject with a message id", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(fakeJS.PublishCallCount()).To(Equal(1))

			subject, data, opts := fakeJS.PublishArgsForCall(0)
			Expect(subject).To(Equal("chainrelay.credits.refund"))
			Expect(data).To(MatchJSON(`{"referenceId":"42"}`))
			Expect(opts).To(HaveLen(2))
			Expect(fakeConn.PublishCallCount()).To(BeZero())
		})

		When("no stream listens on the subject", func() {
			BeforeEach(func() {
				fakeJS.PublishReturns(nil, nats.ErrNoResponders)
			})

			It("should fall back to core NATS", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(fakeConn.PublishCallCount()).To(Equal(1))
				subject, _ := fakeConn.PublishArgsForCall(0)
				Expect(subject).To(Equal("chainrelay.credits.refund"))
			})
		})

		When("the stream fails", func() {
			BeforeEach(func() {
				fakeJS.PublishReturns(nil, nats.ErrTimeout)
			})

			It("should return the error without falling back", func() {
				Expect(err).To(MatchError(nats.ErrTimeout))
				Expect(fakeConn.PublishCallCount()).To(BeZero())
			})
		})
	})

	When("only core NATS is available", func() {
		BeforeEach(func() {
			publisher = notify.NewPublisher(zap.NewNop().Sugar(), fakeConn, nil, "chainrelay")
		})

		It("should publish on the connection", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(fakeConn.PublishCallCount()).To(Equal(1))
		})

		When("the connection is closed", func() {
			BeforeEach(func() {
				fakeConn.PublishReturns(nats.ErrConnectionClosed)
			})

			It("should fail", func() {
				Expect(errors.Is(err, nats.ErrConnectionClosed)).To(BeTrue())
			})
		})
	})

	It("should leave the kind unprefixed without a prefix", func() {
		p := notify.NewPublisher(zap.NewNop().Sugar(), fakeConn, nil, "")
		Expect(p.Subject(core.KindIncomingTransfer)).To(Equal("wallet.incoming"))
	})
})
