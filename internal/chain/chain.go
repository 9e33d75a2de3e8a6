package chain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidKeyFormat = errors.New("chain key must look like <type>:<chain id>")

// Type is the protocol family of a chain.
type Type string

const (
	TypeEVM       Type = "evm"
	TypeSubstrate Type = "substrate"
)

func (t Type) Valid() bool {
	return t == TypeEVM || t == TypeSubstrate
}

// Chain identifies a network within its family. EVM chains use their chain id,
// Substrate chains use the relay's own enumeration.
type Chain int

const (
	Ethereum Chain = 1
	Sepolia  Chain = 11155111
	Moonbeam Chain = 1284
	Moonbase Chain = 1287
	Astar    Chain = 592
	Celo     Chain = 42220
	Base     Chain = 8453
)

const (
	Crust          Chain = 1
	Kilt           Chain = 2
	Phala          Chain = 4
	Subsocial      Chain = 5
	AstarSubstrate Chain = 6
	Polkadot       Chain = 7
	Kusama         Chain = 8
	Westend        Chain = 9
)

// Key is the (chain, chain type) pair every wallet, endpoint and indexer is keyed on.
type Key struct {
	Chain Chain
	Type  Type
}

func NewKey(c Chain, t Type) Key {
	return Key{Chain: c, Type: t}
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.Chain)
}

// ParseKey reads the form produced by Key.String.
func ParseKey(s string) (Key, error) {
	t, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKeyFormat, s)
	}
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 || !Type(t).Valid() {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKeyFormat, s)
	}
	return NewKey(Chain(n), Type(t)), nil
}

// Status is the ledger state of a relayed transaction.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusFailed    Status = "FAILED"
	StatusError     Status = "ERROR"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed || s == StatusError
}

// CanTransition enforces PENDING -> {CONFIRMED | FAILED | ERROR}.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Terminal()
}

// Refundable reports whether reaching s must release the credits charged for the transaction.
func (s Status) Refundable() bool {
	return s == StatusFailed || s == StatusError
}

// NormalizeHash lower-cases a hex hash and guarantees the 0x prefix so ledger and
// indexer hashes compare equal.
func NormalizeHash(hash string) string {
	h := strings.ToLower(strings.TrimSpace(hash))
	if h == "" {
		return h
	}
	if !strings.HasPrefix(h, "0x") {
		h = "0x" + h
	}
	return h
}

// NormalizeHashes applies NormalizeHash and drops empty and duplicate entries.
func NormalizeHashes(hashes []string) []string {
	seen := make(map[string]struct{}, len(hashes))
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		n := NormalizeHash(h)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SignedTx is the output of an adapter's signing step.
type SignedTx struct {
	Hash  string
	Raw   string
	Nonce uint64
}
