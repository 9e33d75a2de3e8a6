package endpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("no endpoint configured for chain")

const (
	cacheExpiration = 5 * time.Minute
	cacheCleanup    = 10 * time.Minute
)

// Registry resolves the RPC URL of a chain. Static entries from configuration
// win over rows in the endpoint table; table lookups are cached.
type Registry struct {
	logs       *zap.SugaredLogger
	source     Source
	static     map[chain.Key]string
	cacheStore *cache.Cache
}

func WithStatic(key chain.Key, url string) func(r *Registry) {
	return func(r *Registry) {
		r.static[key] = url
	}
}

func WithCacheStore(store *cache.Cache) func(r *Registry) {
	return func(r *Registry) {
		r.cacheStore = store
	}
}

func NewRegistry(logger *zap.SugaredLogger, source Source, opts ...func(r *Registry)) *Registry {
	r := &Registry{
		logs:       logger,
		source:     source,
		static:     make(map[chain.Key]string),
		cacheStore: cache.New(cacheExpiration, cacheCleanup),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Lookup returns the endpoint URL for key or an error wrapping ErrNotFound.
func (r *Registry) Lookup(ctx context.Context, key chain.Key) (string, error) {
	if url, ok := r.static[key]; ok {
		return url, nil
	}

	if value, found := r.cacheStore.Get(key.String()); found {
		if url, ok := value.(string); ok {
			return url, nil
		}
	}

	if r.source == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	row, err := r.source.GetEndpoint(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrEndpointNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("load endpoint %s: %w", key, err)
	}
	if row.URL == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	r.cacheStore.Set(key.String(), row.URL, cache.DefaultExpiration)
	r.logs.Infow("endpoint resolved", "chain", key.String())

	return row.URL, nil
}
