package indexer

import (
	"net/http"
	"time"

	"chainrelay/internal/chain"
)

type Direction string

const (
	Outgoing Direction = "OUT"
	Incoming Direction = "IN"
)

// Transfer is one indexer record normalized across chain types. Nonce is only
// reported by EVM indexers.
type Transfer struct {
	Hash        string
	BlockNumber uint64
	From        string
	To          string
	Value       string
	Fee         string
	Nonce       *uint64
	Direction   Direction
	Status      chain.Status
}

// Config describes one indexer deployment.
type Config struct {
	Key           chain.Key
	URL           string
	Confirmations uint64
	Timeout       time.Duration
	PageSize      int
	Retry         RetryPolicy
	HTTPClient    *http.Client
}

type RetryPolicy struct {
	Interval time.Duration
	Retries  uint64
}

var DefaultRetryPolicy = RetryPolicy{
	Interval: time.Second,
	Retries:  3,
}

const (
	defaultTimeout  = 15 * time.Second
	defaultPageSize = 500
)

type statusResponse struct {
	SquidStatus struct {
		Height uint64 `json:"height"`
	} `json:"squidStatus"`
}

type evmTransaction struct {
	Hash        string  `json:"hash"`
	BlockNumber uint64  `json:"blockNumber"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Value       string  `json:"value"`
	Nonce       *uint64 `json:"nonce"`
	Status      int     `json:"status"`
}

type evmResponse struct {
	Transactions []evmTransaction `json:"transactions"`
}

type substrateTransfer struct {
	ExtrinsicHash   string `json:"extrinsicHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	Account         string `json:"account"`
	Counterparty    string `json:"counterparty"`
	TransactionType string `json:"transactionType"`
	Amount          string `json:"amount"`
	Fee             string `json:"fee"`
	Status          int    `json:"status"`
}

type substrateResponse struct {
	Transfers []substrateTransfer `json:"transfers"`
}

func statusOf(code int) chain.Status {
	if code == 1 {
		return chain.StatusConfirmed
	}
	return chain.StatusFailed
}
