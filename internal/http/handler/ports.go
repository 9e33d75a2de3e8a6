package handler

import (
	"context"
	"net/http"

	"chainrelay/internal/core"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name RelayService . RelayService
type RelayService interface {
	Submit(ctx context.Context, req core.SubmitRequest, charge *core.ChargeRequest) (core.SubmitResult, error)
	GetTransactions(ctx context.Context, hashes []string) ([]core.TransactionRecord, error)
	GetByReference(ctx context.Context, table, id string) ([]core.TransactionRecord, error)
}

//counterfeiter:generate -o fake -fake-name RequestValidator . RequestValidator
type RequestValidator interface {
	DecodeAndValidateJSONPayload(r *http.Request, object any) error
}
