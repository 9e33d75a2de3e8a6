package repository

import (
	"time"

	"chainrelay/internal/chain"
)

type WalletStatus string

const (
	WalletActive   WalletStatus = "ACTIVE"
	WalletDisabled WalletStatus = "DISABLED"
)

// Wallet is a signing account. NextNonce only moves forward and only under a row lock.
type Wallet struct {
	ID                 uint64       `gorm:"primaryKey"`
	Chain              chain.Chain  `gorm:"not null;uniqueIndex:idx_wallet_identity,priority:1"`
	ChainType          chain.Type   `gorm:"size:16;not null;uniqueIndex:idx_wallet_identity,priority:2"`
	Address            string       `gorm:"size:66;not null;uniqueIndex:idx_wallet_identity,priority:3"`
	Seed               string       `gorm:"type:text;not null" json:"-"`
	NextNonce          uint64       `gorm:"not null;default:0"`
	LastProcessedNonce int64        `gorm:"not null;default:-1"`
	LastParsedBlock    uint64       `gorm:"not null;default:0"`
	BlockParseSize     uint64       `gorm:"not null;default:50"`
	MinBalance         string       `gorm:"size:100;not null;default:'0'"` // smallest unit, decimal string
	UsageTimestamp     time.Time    `gorm:"not null;index"`
	Status             WalletStatus `gorm:"size:16;not null;default:'ACTIVE'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (w Wallet) Key() chain.Key {
	return chain.NewKey(w.Chain, w.ChainType)
}

// Transaction is a ledger row. ReferenceTable and ReferenceID point at the domain
// object that requested the transaction and are either both set or both empty.
type Transaction struct {
	ID                uint64       `gorm:"primaryKey"`
	Chain             chain.Chain  `gorm:"not null;uniqueIndex:idx_tx_nonce,priority:1"`
	ChainType         chain.Type   `gorm:"size:16;not null;uniqueIndex:idx_tx_nonce,priority:2"`
	Address           string       `gorm:"size:66;not null;uniqueIndex:idx_tx_nonce,priority:3"`
	Nonce             uint64       `gorm:"not null;uniqueIndex:idx_tx_nonce,priority:4"`
	TransactionHash   string       `gorm:"size:66;not null;index"`
	RawTransaction    string       `gorm:"type:text;not null"`
	ReferenceTable    string       `gorm:"size:64;index:idx_tx_reference,priority:1"`
	ReferenceID       string       `gorm:"size:64;index:idx_tx_reference,priority:2"`
	TransactionStatus chain.Status `gorm:"size:16;not null;index"`
	SubmitAttempts    int          `gorm:"not null;default:0"`
	LastError         string       `gorm:"type:text"`
	BroadcastAt       *time.Time
	CreateTime        time.Time `gorm:"autoCreateTime"`
	UpdateTime        time.Time `gorm:"autoUpdateTime"`
}

func (t Transaction) Key() chain.Key {
	return chain.NewKey(t.Chain, t.ChainType)
}

// HasReference reports whether the row carries a domain reference.
func (t Transaction) HasReference() bool {
	return t.ReferenceTable != "" && t.ReferenceID != ""
}

// Endpoint is populated out of band and read at startup.
type Endpoint struct {
	ID        uint64      `gorm:"primaryKey"`
	Chain     chain.Chain `gorm:"not null;uniqueIndex:idx_endpoint_identity,priority:1"`
	ChainType chain.Type  `gorm:"size:16;not null;uniqueIndex:idx_endpoint_identity,priority:2"`
	URL       string      `gorm:"type:text;not null"`
}

// Event is an outbox row published to the message bus after the enclosing
// database transaction commits.
type Event struct {
	ID           string `gorm:"primaryKey;size:36"`
	Kind         string `gorm:"size:64;not null;index"`
	Payload      []byte `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
	DispatchedAt *time.Time `gorm:"index"`
}

// TransitionQuery identifies ledger rows by chain, wallet address and hash set.
type TransitionQuery struct {
	Key     chain.Key
	Address string
	Hashes  []string
}
