package handler

import "chainrelay/internal/core"

const (
	oopsErr = "Oops! Something went wrong. Please try again later."

	msgSubmitFailed  = "Could not submit transaction"
	msgFetchFailed   = "Could not retrieve transactions"
	msgRequestFailed = "Request failed"

	// shown instead of causes that would leak node or database details
	errUnexpected = "unexpected error occurred"
)

type Response struct {
	Message string `json:"message,omitempty"` // short message for humans
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type transactionsResponse struct {
	Transactions []core.TransactionRecord `json:"transactions"`
}
