package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"chainrelay/internal/chain"
	"chainrelay/internal/core"
	"chainrelay/internal/http/handler"
	"chainrelay/internal/http/handler/fake"
	"chainrelay/internal/http/payload"
	"chainrelay/internal/repository"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("RelayHandler", func() {
	var (
		rh            *handler.RelayHandler
		fakeService   *fake.RelayService
		fakeValidator *fake.RequestValidator
		fakeLogger    *zap.SugaredLogger
		w             *httptest.ResponseRecorder
		req           *http.Request
		fakeErr       error
	)

	BeforeEach(func() {
		fakeErr = errors.New("fake-error")
		fakeLogger = zap.NewNop().Sugar()
		fakeService = new(fake.RelayService)
		fakeValidator = new(fake.RequestValidator)

		w = httptest.NewRecorder()
		rh = handler.NewRelayHandler(fakeLogger, fakeValidator, fakeService)
	})

	Describe("HandleSubmitTransaction", func() {
		BeforeEach(func() {
			body := strings.NewReader(`{"chain":1287,"chainType":"evm","transaction":"0xf86c","referenceTable":"nft_mint","referenceId":"7"}`)
			req = httptest.NewRequest("POST", "/relay/transactions", body)
			req.Header.Set("Content-Type", "application/json")

			fakeValidator.DecodeAndValidateJSONPayloadStub = payload.DecodeValidator{}.DecodeAndValidateJSONPayload
			fakeService.SubmitReturns(core.SubmitResult{
				TransactionHash: "0xhash",
				Address:         "0xwallet",
				Nonce:           3,
				Broadcast:       true,
			}, nil)
		})

		JustBeforeEach(func() {
			rh.HandleSubmitTransaction(w, req)
		})

		When("the transaction is broadcast", func() {
			It("should return the hash, address and nonce", func() {
				Expect(w.Code).To(Equal(http.StatusOK))

				var result core.SubmitResult
				Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
				Expect(result.TransactionHash).To(Equal("0xhash"))
				Expect(result.Address).To(Equal("0xwallet"))
				Expect(result.Nonce).To(BeEquivalentTo(3))

				Expect(fakeService.SubmitCallCount()).To(Equal(1))
				_, sub, charge := fakeService.SubmitArgsForCall(0)
				Expect(sub.Key).To(Equal(chain.NewKey(chain.Moonbase, chain.TypeEVM)))
				Expect(sub.ReferenceTable).To(Equal("nft_mint"))
				Expect(sub.ReferenceID).To(Equal("7"))
				Expect(charge).To(BeNil())
			})
		})

		When("the broadcast was deferred", func() {
			BeforeEach(func() {
				fakeService.SubmitReturns(core.SubmitResult{TransactionHash: "0xhash"}, nil)
			})

			It("should return 202 Accepted", func() {
				Expect(w.Code).To(Equal(http.StatusAccepted))
			})
		})

		When("the submission is paid", func() {
			BeforeEach(func() {
				body := strings.NewReader(`{"chain":1287,"chainType":"evm","transaction":"0xf86c","referenceTable":"nft_mint","referenceId":"7","productCode":"NFT_MINT","projectId":"p-1"}`)
				req = httptest.NewRequest("POST", "/relay/transactions", body)
			})

			It("should pass the charge along", func() {
				Expect(w.Code).To(Equal(http.StatusOK))
				_, _, charge := fakeService.SubmitArgsForCall(0)
				Expect(charge).NotTo(BeNil())
				Expect(charge.ProductCode).To(Equal("NFT_MINT"))
				Expect(charge.ProjectID).To(Equal("p-1"))
			})
		})

		When("payload validation fails", func() {
			BeforeEach(func() {
				fakeValidator.DecodeAndValidateJSONPayloadStub = nil
				fakeValidator.DecodeAndValidateJSONPayloadReturns(fakeErr)
			})

			It("should return status 400", func() {
				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(w.Body.String()).To(ContainSubstring(fakeErr.Error()))
				Expect(fakeService.SubmitCallCount()).To(Equal(0))
				argReq, _ := fakeValidator.DecodeAndValidateJSONPayloadArgsForCall(0)
				Expect(argReq).To(Equal(req))
			})
		})
	})

	Describe("HandleSubmitTransaction errors", func() {
		BeforeEach(func() {
			body := strings.NewReader(`{"chain":1287,"chainType":"evm","transaction":"0xf86c"}`)
			req = httptest.NewRequest("POST", "/relay/transactions", body)
			fakeValidator.DecodeAndValidateJSONPayloadStub = payload.DecodeValidator{}.DecodeAndValidateJSONPayload
		})

		DescribeTable("service errors",
			func(err error, code int, exposed bool) {
				fakeService.SubmitReturns(core.SubmitResult{}, err)
				rh.HandleSubmitTransaction(w, req)

				Expect(w.Code).To(Equal(code))
				if exposed {
					Expect(w.Body.String()).To(ContainSubstring(err.Error()))
				} else {
					Expect(w.Body.String()).To(ContainSubstring("unexpected error occurred"))
				}
			},
			Entry("unsupported chain", fmt.Errorf("%w: evm:5", core.ErrChainNotSupported), http.StatusBadRequest, true),
			Entry("undecodable payload", fmt.Errorf("sign: %w", chain.ErrInvalidPayload), http.StatusBadRequest, true),
			Entry("out of credits", fmt.Errorf("charge: %w", core.ErrInsufficientCredits), http.StatusPaymentRequired, true),
			Entry("wallet pool exhausted", repository.ErrNoWalletAvailable, http.StatusServiceUnavailable, true),
			Entry("rejected and refunded", fmt.Errorf("submit 0x1: %w: %w", core.ErrRefundScheduled, chain.ErrRejected), http.StatusUnprocessableEntity, true),
			Entry("charge unconfirmed and refunded", fmt.Errorf("%w: charge: %w", core.ErrRefundScheduled, core.ErrChargeUnconfirmed), http.StatusGatewayTimeout, true),
			Entry("unexpected", errors.New("connection reset"), http.StatusInternalServerError, false),
		)
	})

	Describe("HandleGetTransactions", func() {
		BeforeEach(func() {
			req = httptest.NewRequest("GET", "/relay/transactions?transactionHashes=0x1&transactionHashes=0x2", nil)
		})

		JustBeforeEach(func() {
			rh.HandleGetTransactions(w, req)
		})

		When("transactions are fetched successfully", func() {
			BeforeEach(func() {
				fakeService.GetTransactionsReturns([]core.TransactionRecord{
					{TransactionHash: "0x1"},
					{TransactionHash: "0x2"},
				}, nil)
			})

			It("should return the transactions", func() {
				Expect(w.Code).To(Equal(http.StatusOK))
				var response map[string][]core.TransactionRecord
				Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
				Expect(response["transactions"]).To(HaveLen(2))

				_, hashes := fakeService.GetTransactionsArgsForCall(0)
				Expect(hashes).To(Equal([]string{"0x1", "0x2"}))
			})
		})

		When("query parameters are invalid", func() {
			BeforeEach(func() {
				req = httptest.NewRequest("GET", "/relay/transactions?invalid=param", nil)
			})

			It("should return 400 Bad Request", func() {
				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(fakeService.GetTransactionsCallCount()).To(Equal(0))
			})
		})

		When("transaction service fails", func() {
			BeforeEach(func() {
				fakeService.GetTransactionsReturns(nil, fakeErr)
			})

			It("should return 500 Internal Server Error", func() {
				Expect(w.Code).To(Equal(http.StatusInternalServerError))
				Expect(w.Body.String()).To(ContainSubstring(fakeErr.Error()))
			})
		})
	})

	Describe("HandleGetByReference", func() {
		var mux *http.ServeMux

		BeforeEach(func() {
			mux = http.NewServeMux()
			rh.Register(mux)
			req = httptest.NewRequest("GET", "/relay/references/nft_mint/7", nil)
			fakeService.GetByReferenceReturns([]core.TransactionRecord{{TransactionHash: "0xref"}}, nil)
		})

		JustBeforeEach(func() {
			mux.ServeHTTP(w, req)
		})

		It("should route the path values to the service", func() {
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("0xref"))
			_, table, id := fakeService.GetByReferenceArgsForCall(0)
			Expect(table).To(Equal("nft_mint"))
			Expect(id).To(Equal("7"))
		})

		When("the reference is rejected", func() {
			BeforeEach(func() {
				fakeService.GetByReferenceReturns(nil, core.ErrInvalidReference)
			})

			It("should return 400 Bad Request", func() {
				Expect(w.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("the ledger is unavailable", func() {
			BeforeEach(func() {
				fakeService.GetByReferenceReturns(nil, fakeErr)
			})

			It("should hide the cause", func() {
				Expect(w.Code).To(Equal(http.StatusInternalServerError))
				Expect(w.Body.String()).NotTo(ContainSubstring(fakeErr.Error()))
			})
		})
	})

	Describe("HandleHealth", func() {
		It("should report ok", func() {
			rh.HandleHealth(w, httptest.NewRequest("GET", "/health", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))
		})
	})
})
