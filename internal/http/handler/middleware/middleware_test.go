package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"chainrelay/internal/http/handler/middleware"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("Middleware", func() {
	var (
		seen    string
		handler http.Handler
		logs    *observer.ObservedLogs
		w       *httptest.ResponseRecorder
		req     *http.Request
	)

	BeforeEach(func() {
		seen = ""
		obsCore, observed := observer.New(zap.InfoLevel)
		logs = observed

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.FromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		})
		logger := zap.New(obsCore).Sugar()
		handler = middleware.NewRequestIDMiddleware().RequestID(
			middleware.NewLoggingMiddleware(logger).Logging(inner))

		w = httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/health", nil)
	})

	JustBeforeEach(func() {
		handler.ServeHTTP(w, req)
	})

	It("should assign a request id", func() {
		Expect(seen).NotTo(BeEmpty())
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal(seen))
	})

	When("the caller sends a request id", func() {
		BeforeEach(func() {
			req.Header.Set(middleware.RequestIDHeader, "req-1")
		})

		It("should keep it", func() {
			Expect(seen).To(Equal("req-1"))
			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-1"))
		})
	})

	It("should log the response status", func() {
		entries := logs.FilterMessage("request handled").All()
		Expect(entries).To(HaveLen(1))
		fields := entries[0].ContextMap()
		Expect(fields["status"]).To(BeEquivalentTo(http.StatusTeapot))
		Expect(fields["path"]).To(Equal("/health"))
		Expect(fields["request_id"]).To(Equal(seen))
	})
})
