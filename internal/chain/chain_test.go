package chain_test

import (
	"errors"
	"fmt"

	"chainrelay/internal/chain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Key", func() {
	It("should parse what String produces", func() {
		key := chain.NewKey(chain.Moonbase, chain.TypeEVM)
		parsed, err := chain.ParseKey(key.String())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(key))
	})

	DescribeTable("malformed keys",
		func(s string) {
			_, err := chain.ParseKey(s)
			Expect(err).To(MatchError(chain.ErrInvalidKeyFormat))
		},
		Entry("no separator", "evm1287"),
		Entry("unknown type", "utxo:1"),
		Entry("non numeric id", "substrate:kilt"),
		Entry("zero id", "evm:0"),
	)
})

var _ = Describe("Status", func() {
	It("should only leave PENDING for a terminal status", func() {
		Expect(chain.CanTransition(chain.StatusPending, chain.StatusConfirmed)).To(BeTrue())
		Expect(chain.CanTransition(chain.StatusPending, chain.StatusError)).To(BeTrue())
		Expect(chain.CanTransition(chain.StatusPending, chain.StatusPending)).To(BeFalse())
		Expect(chain.CanTransition(chain.StatusConfirmed, chain.StatusFailed)).To(BeFalse())
		Expect(chain.CanTransition(chain.StatusFailed, chain.StatusConfirmed)).To(BeFalse())
	})

	It("should refund FAILED and ERROR only", func() {
		Expect(chain.StatusFailed.Refundable()).To(BeTrue())
		Expect(chain.StatusError.Refundable()).To(BeTrue())
		Expect(chain.StatusConfirmed.Refundable()).To(BeFalse())
		Expect(chain.StatusPending.Refundable()).To(BeFalse())
	})
})

var _ = Describe("NormalizeHashes", func() {
	It("should lower-case, prefix and dedupe", func() {
		Expect(chain.NormalizeHashes([]string{"0xABC", "abc", " ", "0xdef"})).To(Equal([]string{"0xabc", "0xdef"}))
	})
})

var _ = Describe("error classes", func() {
	It("should keep retryable errors out of the fatal class", func() {
		err := chain.Retryable(errors.New("dial tcp: i/o timeout"))
		Expect(chain.IsRetryable(err)).To(BeTrue())
		Expect(chain.IsFatal(err)).To(BeFalse())
	})

	It("should see fatal errors through wrapping", func() {
		err := fmt.Errorf("submit: %w", chain.ErrInsufficientBalance)
		Expect(chain.IsFatal(err)).To(BeTrue())
		Expect(chain.Alertable(err)).To(BeFalse())
		Expect(chain.Alertable(fmt.Errorf("sign: %w", chain.ErrInvalidKey))).To(BeTrue())
	})

	It("should treat a consumed nonce as fatal and a known transaction as not", func() {
		Expect(chain.IsFatal(fmt.Errorf("send: %w", chain.ErrNonceConsumed))).To(BeTrue())
		Expect(chain.IsFatal(chain.ErrAlreadyKnown)).To(BeFalse())
	})
})
