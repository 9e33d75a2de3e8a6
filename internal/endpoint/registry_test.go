package endpoint_test

import (
	"context"
	"errors"

	"chainrelay/internal/chain"
	"chainrelay/internal/endpoint"
	"chainrelay/internal/endpoint/fake"
	"chainrelay/internal/repository"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Registry", func() {
	var (
		fakeSource *fake.Source
		registry   *endpoint.Registry
		ctx        context.Context
		moonbeam   chain.Key
		kilt       chain.Key
	)

	BeforeEach(func() {
		ctx = context.Background()
		fakeSource = new(fake.Source)
		moonbeam = chain.NewKey(chain.Moonbeam, chain.TypeEVM)
		kilt = chain.NewKey(chain.Kilt, chain.TypeSubstrate)

		registry = endpoint.NewRegistry(zap.NewNop().Sugar(), fakeSource,
			endpoint.WithStatic(moonbeam, "https://rpc.api.moonbeam.network"))
	})

	It("should prefer static entries", func() {
		url, err := registry.Lookup(ctx, moonbeam)
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(Equal("https://rpc.api.moonbeam.network"))
		Expect(fakeSource.GetEndpointCallCount()).To(BeZero())
	})

	It("should load and cache rows from the endpoint table", func() {
		fakeSource.GetEndpointReturns(repository.Endpoint{URL: "wss://kilt.example"}, nil)

		for range 3 {
			url, err := registry.Lookup(ctx, kilt)
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(Equal("wss://kilt.example"))
		}

		Expect(fakeSource.GetEndpointCallCount()).To(Equal(1))
		_, key := fakeSource.GetEndpointArgsForCall(0)
		Expect(key).To(Equal(kilt))
	})

	It("should report unknown chains as not found", func() {
		fakeSource.GetEndpointReturns(repository.Endpoint{}, repository.ErrEndpointNotFound)

		_, err := registry.Lookup(ctx, kilt)
		Expect(err).To(MatchError(endpoint.ErrNotFound))
	})

	It("should pass through storage errors", func() {
		fakeErr := errors.New("fake error")
		fakeSource.GetEndpointReturns(repository.Endpoint{}, fakeErr)

		_, err := registry.Lookup(ctx, kilt)
		Expect(err).To(MatchError(fakeErr))
		Expect(err).NotTo(MatchError(endpoint.ErrNotFound))
	})

	It("should work without a table source", func() {
		r := endpoint.NewRegistry(zap.NewNop().Sugar(), nil)
		_, err := r.Lookup(ctx, kilt)
		Expect(err).To(MatchError(endpoint.ErrNotFound))
	})
})
