package payload_test

import (
	"net/http/httptest"
	"strings"

	"chainrelay/internal/chain"
	"chainrelay/internal/http/payload"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SubmitTransactionRequest", func() {
	var req payload.SubmitTransactionRequest

	BeforeEach(func() {
		req = payload.SubmitTransactionRequest{
			Chain:       1287,
			ChainType:   "evm",
			Transaction: "0xf86c01",
		}
	})

	It("should accept an unpaid submission without a reference", func() {
		Expect(req.Validate()).To(Succeed())
		Expect(req.Charge()).To(BeNil())
	})

	DescribeTable("invalid submissions",
		func(mutate func(r *payload.SubmitTransactionRequest)) {
			mutate(&req)
			Expect(req.Validate()).NotTo(Succeed())
		},
		Entry("missing chain", func(r *payload.SubmitTransactionRequest) { r.Chain = 0 }),
		Entry("unknown chain type", func(r *payload.SubmitTransactionRequest) { r.ChainType = "utxo" }),
		Entry("non hex payload", func(r *payload.SubmitTransactionRequest) { r.Transaction = "not-hex" }),
		Entry("table without id", func(r *payload.SubmitTransactionRequest) { r.ReferenceTable = "nft_mint" }),
		Entry("id without table", func(r *payload.SubmitTransactionRequest) { r.ReferenceID = "7" }),
		Entry("product without project", func(r *payload.SubmitTransactionRequest) {
			r.ProductCode = "NFT_MINT"
			r.ReferenceTable, r.ReferenceID = "nft_mint", "7"
		}),
		Entry("paid without reference", func(r *payload.SubmitTransactionRequest) {
			r.ProductCode, r.ProjectID = "NFT_MINT", "p-1"
		}),
	)

	It("should convert a paid submission", func() {
		req.ReferenceTable, req.ReferenceID = "nft_mint", "7"
		req.ProductCode, req.ProjectID = "NFT_MINT", "p-1"
		req.Address = "0xabc"
		Expect(req.Validate()).To(Succeed())

		sub := req.ToSubmitRequest()
		Expect(sub.Key).To(Equal(chain.NewKey(chain.Moonbase, chain.TypeEVM)))
		Expect(sub.Payload).To(Equal("0xf86c01"))
		Expect(sub.HasReference()).To(BeTrue())
		Expect(sub.Address).To(Equal("0xabc"))

		charge := req.Charge()
		Expect(charge).NotTo(BeNil())
		Expect(charge.ProductCode).To(Equal("NFT_MINT"))
		Expect(charge.ProjectID).To(Equal("p-1"))
	})
})

var _ = Describe("TransactionsRequest", func() {
	It("should accept mixed case hashes", func() {
		Expect(payload.TransactionsRequest{Transactions: []string{"0xABcd", "0x12"}}.Validate()).To(Succeed())
	})

	It("should reject an empty list", func() {
		Expect(payload.TransactionsRequest{}.Validate()).NotTo(Succeed())
	})

	It("should reject a hash without prefix", func() {
		Expect(payload.TransactionsRequest{Transactions: []string{"abcd"}}.Validate()).NotTo(Succeed())
	})
})

var _ = Describe("DecodeValidator", func() {
	var dv payload.DecodeValidator

	It("should decode and validate the body", func() {
		r := httptest.NewRequest("POST", "/relay/transactions", strings.NewReader(`{"chain":1,"chainType":"evm","transaction":"0x01"}`))
		var req payload.SubmitTransactionRequest
		Expect(dv.DecodeAndValidateJSONPayload(r, &req)).To(Succeed())
		Expect(req.Chain).To(Equal(1))
	})

	It("should reject unknown fields", func() {
		r := httptest.NewRequest("POST", "/relay/transactions", strings.NewReader(`{"chain":1,"password":"x"}`))
		var req payload.SubmitTransactionRequest
		Expect(dv.DecodeAndValidateJSONPayload(r, &req)).To(MatchError(ContainSubstring("decoding json payload")))
	})

	It("should reject a second object after the first", func() {
		r := httptest.NewRequest("POST", "/relay/transactions", strings.NewReader(`{"chain":1,"chainType":"evm","transaction":"0x01"}{"chain":2}`))
		var req payload.SubmitTransactionRequest
		Expect(dv.DecodeAndValidateJSONPayload(r, &req)).To(MatchError(payload.ErrTrailingData))
	})

	It("should reject an oversized body", func() {
		body := `{"chain":1,"chainType":"evm","transaction":"0x` + strings.Repeat("ab", 1<<20) + `"}`
		r := httptest.NewRequest("POST", "/relay/transactions", strings.NewReader(body))
		var req payload.SubmitTransactionRequest
		Expect(dv.DecodeAndValidateJSONPayload(r, &req)).To(MatchError(ContainSubstring("decoding json payload")))
	})

	It("should surface validation errors", func() {
		r := httptest.NewRequest("POST", "/relay/transactions", strings.NewReader(`{"chain":1,"chainType":"evm"}`))
		var req payload.SubmitTransactionRequest
		Expect(dv.DecodeAndValidateJSONPayload(r, &req)).To(MatchError(ContainSubstring("validating payload")))
	})
})
