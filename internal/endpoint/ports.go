package endpoint

import (
	"context"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name Source . Source
type Source interface {
	GetEndpoint(ctx context.Context, key chain.Key) (repository.Endpoint, error)
}
