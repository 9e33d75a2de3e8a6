package core

import (
	"errors"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/repository"
)

var (
	ErrChainNotSupported   = errors.New("chain not served by this relay")
	ErrInvalidReference    = errors.New("reference table and id must be set together")
	ErrRefundScheduled     = errors.New("refund already scheduled")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidCharge       = errors.New("charge requires product code, project id and reference")
	// ErrLedgerRowCommitted wraps failures that happen after the PENDING row
	// exists. Its refund belongs to whoever moves the row to ERROR or FAILED.
	ErrLedgerRowCommitted = errors.New("ledger row committed")
	// ErrChargeUnconfirmed means the credit ledger may or may not have charged.
	ErrChargeUnconfirmed = errors.New("charge outcome unknown")
)

// Outbox event kinds. Each maps to a subject under the configured prefix.
const (
	KindTransactionStatus = "transaction.status"
	KindRefund            = "credits.refund"
	KindIncomingTransfer  = "wallet.incoming"
)

// SubmitRequest asks the relay to sign and broadcast Payload. Address pins a
// wallet; when empty the least recently used wallet of the chain is taken.
type SubmitRequest struct {
	Key            chain.Key
	Payload        string
	ReferenceTable string
	ReferenceID    string
	Address        string
}

func (r SubmitRequest) HasReference() bool {
	return r.ReferenceTable != "" && r.ReferenceID != ""
}

type SubmitResult struct {
	TransactionHash string `json:"transactionHash"`
	Address         string `json:"address"`
	Nonce           uint64 `json:"nonce"`
	Broadcast       bool   `json:"broadcast"`
}

// ChargeRequest is sent to the credit ledger before a paid action runs.
type ChargeRequest struct {
	ProductCode    string `json:"productCode"`
	ProjectID      string `json:"projectId"`
	ReferenceTable string `json:"referenceTable"`
	ReferenceID    string `json:"referenceId"`
}

func (c ChargeRequest) Valid() bool {
	return c.ProductCode != "" && c.ProjectID != "" && c.ReferenceTable != "" && c.ReferenceID != ""
}

// StatusChanged is published once per step that moved ledger rows out of PENDING.
type StatusChanged struct {
	Chain     chain.Chain  `json:"chain"`
	ChainType chain.Type   `json:"chainType"`
	Address   string       `json:"address"`
	Status    chain.Status `json:"status"`
	Hashes    []string     `json:"hashes"`
}

// Refund releases the credits charged for a reference.
type Refund struct {
	ReferenceTable  string       `json:"referenceTable"`
	ReferenceID     string       `json:"referenceId"`
	TransactionHash string       `json:"transactionHash,omitempty"`
	Status          chain.Status `json:"status,omitempty"`
	Reason          string       `json:"reason"`
}

type IncomingTransfer struct {
	Chain       chain.Chain `json:"chain"`
	ChainType   chain.Type  `json:"chainType"`
	Wallet      string      `json:"wallet"`
	Hash        string      `json:"hash"`
	From        string      `json:"from"`
	Value       string      `json:"value"`
	BlockNumber uint64      `json:"blockNumber"`
}

// TransactionRecord is the read view of a ledger row.
type TransactionRecord struct {
	TransactionHash   string       `json:"transactionHash"`
	TransactionStatus chain.Status `json:"transactionStatus"`
	Chain             chain.Chain  `json:"chain"`
	ChainType         chain.Type   `json:"chainType"`
	Address           string       `json:"address"`
	Nonce             uint64       `json:"nonce"`
	ReferenceTable    string       `json:"referenceTable,omitempty"`
	ReferenceID       string       `json:"referenceId,omitempty"`
	SubmitAttempts    int          `json:"submitAttempts"`
	LastError         string       `json:"lastError,omitempty"`
	BroadcastAt       *time.Time   `json:"broadcastAt,omitempty"`
	CreateTime        time.Time    `json:"createTime"`
}

func toRecords(transactions []repository.Transaction) []TransactionRecord {
	records := make([]TransactionRecord, len(transactions))
	for i, tx := range transactions {
		records[i] = TransactionRecord{
			TransactionHash:   tx.TransactionHash,
			TransactionStatus: tx.TransactionStatus,
			Chain:             tx.Chain,
			ChainType:         tx.ChainType,
			Address:           tx.Address,
			Nonce:             tx.Nonce,
			ReferenceTable:    tx.ReferenceTable,
			ReferenceID:       tx.ReferenceID,
			SubmitAttempts:    tx.SubmitAttempts,
			LastError:         tx.LastError,
			BroadcastAt:       tx.BroadcastAt,
			CreateTime:        tx.CreateTime,
		}
	}
	return records
}

// StepResult reports one wallet reconciliation step.
type StepResult struct {
	WalletID  uint64
	From      uint64
	To        uint64
	Confirmed int
	Failed    int
	Unknown   int
	Incoming  int
	Refunds   int
	Stale     int // PENDING rows behind a nonce the chain already processed
	Skipped   bool
}

// CycleReport aggregates one reconciliation cycle over all wallets.
type CycleReport struct {
	Wallets int
	Failed  int
	Steps   []StepResult
}

type SweepReport struct {
	Broadcast int
	Deferred  int
	Errored   int
}
