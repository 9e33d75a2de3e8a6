package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"chainrelay/internal/chain"
	"chainrelay/internal/core"
	"chainrelay/internal/http/handler/middleware"
	"chainrelay/internal/http/payload"
	"chainrelay/internal/repository"

	"go.uber.org/zap"
)

var (
	SubmitTransaction = "POST /relay/transactions"
	GetTransactions   = "GET /relay/transactions"
	GetByReference    = "GET /relay/references/{table}/{id}"
	Health            = "GET /health"
	Metrics           = "GET /metrics"
)

type RelayHandler struct {
	logs             *zap.SugaredLogger
	requestValidator RequestValidator
	relay            RelayService
}

func NewRelayHandler(logger *zap.SugaredLogger, requestValidator RequestValidator, relayService RelayService) *RelayHandler {
	return &RelayHandler{
		logs:             logger,
		requestValidator: requestValidator,
		relay:            relayService,
	}
}

// Register binds every relay route on mux.
func (h *RelayHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc(SubmitTransaction, h.HandleSubmitTransaction)
	mux.HandleFunc(GetTransactions, h.HandleGetTransactions)
	mux.HandleFunc(GetByReference, h.HandleGetByReference)
	mux.HandleFunc(Health, h.HandleHealth)
}

func (h *RelayHandler) HandleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.FromContext(r.Context())

	var req payload.SubmitTransactionRequest
	if err := h.requestValidator.DecodeAndValidateJSONPayload(r, &req); err != nil {
		h.respond(w, Response{
			Message: msgSubmitFailed,
			Error:   fmt.Errorf("invalid request payload: %w", err).Error(),
		}, http.StatusBadRequest,
			requestId)
		h.logs.Errorw("failed to decode and validate request payload",
			"error", err,
			"handler", SubmitTransaction,
			"request_id", requestId)
		return
	}

	result, err := h.relay.Submit(r.Context(), req.ToSubmitRequest(), req.Charge())
	if err != nil {
		code := statusFor(err)
		resp := Response{
			Message: msgSubmitFailed,
			Error:   err.Error(),
		}
		if code == http.StatusInternalServerError {
			resp.Error = errUnexpected
		}

		h.respond(w, resp, code, requestId)
		h.logs.Errorw("transaction submission failed",
			"error", err,
			"chain", req.Chain,
			"chainType", req.ChainType,
			"referenceTable", req.ReferenceTable,
			"referenceId", req.ReferenceID,
			"handler", SubmitTransaction,
			"request_id", requestId)
		return
	}

	h.logs.Infow("transaction submitted",
		"transactionHash", result.TransactionHash,
		"address", result.Address,
		"nonce", result.Nonce,
		"broadcast", result.Broadcast,
		"handler", SubmitTransaction,
		"request_id", requestId)

	code := http.StatusOK
	if !result.Broadcast {
		code = http.StatusAccepted
	}
	h.respond(w, result, code, requestId)
}

func (h *RelayHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.FromContext(r.Context())

	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		h.respond(w, Response{
			Message: msgFetchFailed,
			Error:   fmt.Errorf("parse query parameters: %w", err).Error(),
		}, http.StatusBadRequest,
			requestId)
		h.logs.Errorw("failed to parse query parameters", "error", err, "handler", GetTransactions, "request_id", requestId)
		return
	}

	txRequest := payload.TransactionsRequest{
		Transactions: values["transactionHashes"],
	}
	if err := txRequest.Validate(); err != nil {
		h.respond(w, Response{
			Message: msgRequestFailed,
			Error:   fmt.Errorf("validate request payload: %w", err).Error(),
		}, http.StatusBadRequest,
			requestId)
		h.logs.Errorw("failed to validate request payload",
			"error", err,
			"handler", GetTransactions,
			"request_id", requestId)
		return
	}

	transactions, err := h.relay.GetTransactions(r.Context(), txRequest.Transactions)
	if err != nil {
		h.respond(w, Response{
			Message: msgFetchFailed,
			Error:   fmt.Errorf("get transactions: %w", err).Error(),
		}, http.StatusInternalServerError,
			requestId)
		h.logs.Errorw("failed to get transactions",
			"error", err,
			"handler", GetTransactions,
			"request_id", requestId)
		return
	}

	h.logs.Infow("transactions retrieved",
		"requested", len(txRequest.Transactions),
		"found", len(transactions),
		"handler", GetTransactions,
		"request_id", requestId)

	h.respond(w, transactionsResponse{Transactions: transactions}, http.StatusOK, requestId)
}

func (h *RelayHandler) HandleGetByReference(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.FromContext(r.Context())
	table, id := r.PathValue("table"), r.PathValue("id")

	transactions, err := h.relay.GetByReference(r.Context(), table, id)
	if err != nil {
		code := http.StatusInternalServerError
		msg := errUnexpected
		if errors.Is(err, core.ErrInvalidReference) {
			code = http.StatusBadRequest
			msg = err.Error()
		}
		h.respond(w, Response{
			Message: msgFetchFailed,
			Error:   msg,
		}, code,
			requestId)
		h.logs.Errorw("failed to get transactions by reference",
			"error", err,
			"referenceTable", table,
			"referenceId", id,
			"handler", GetByReference,
			"request_id", requestId)
		return
	}

	h.respond(w, transactionsResponse{Transactions: transactions}, http.StatusOK, requestId)
}

func (h *RelayHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]string{"status": "ok"}, http.StatusOK, middleware.FromContext(r.Context()))
}

// statusFor maps submission errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrChainNotSupported),
		errors.Is(err, core.ErrInvalidReference),
		errors.Is(err, core.ErrInvalidCharge),
		errors.Is(err, chain.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, repository.ErrNoWalletAvailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrChargeUnconfirmed):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrRefundScheduled), chain.IsFatal(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *RelayHandler) respond(w http.ResponseWriter, resp any, code int, requestId string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, oopsErr, http.StatusInternalServerError)
		h.logs.Errorw("failed to encode response",
			"error", err,
			"request_id", requestId)
	}
}
