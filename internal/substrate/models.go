package substrate

import (
	"errors"
	"fmt"
	"time"

	"chainrelay/internal/chain"
)

var ErrUnknownChain = errors.New("no substrate profile for chain")

const defaultEraPeriod = 64

// Profile carries what differs between Substrate networks when signing: the
// SS58 address format byte and the validity window of a mortal extrinsic.
type Profile struct {
	Chain      chain.Chain
	Name       string
	SS58Prefix uint16
	EraPeriod  uint64
}

var profiles = map[chain.Chain]Profile{
	chain.Crust:          {Chain: chain.Crust, Name: "crust", SS58Prefix: 66, EraPeriod: defaultEraPeriod},
	chain.Kilt:           {Chain: chain.Kilt, Name: "kilt", SS58Prefix: 38, EraPeriod: defaultEraPeriod},
	chain.Phala:          {Chain: chain.Phala, Name: "phala", SS58Prefix: 30, EraPeriod: defaultEraPeriod},
	chain.Subsocial:      {Chain: chain.Subsocial, Name: "subsocial", SS58Prefix: 28, EraPeriod: defaultEraPeriod},
	chain.AstarSubstrate: {Chain: chain.AstarSubstrate, Name: "astar", SS58Prefix: 5, EraPeriod: defaultEraPeriod},
	chain.Polkadot:       {Chain: chain.Polkadot, Name: "polkadot", SS58Prefix: 0, EraPeriod: defaultEraPeriod},
	chain.Kusama:         {Chain: chain.Kusama, Name: "kusama", SS58Prefix: 2, EraPeriod: defaultEraPeriod},
	chain.Westend:        {Chain: chain.Westend, Name: "westend", SS58Prefix: 42, EraPeriod: defaultEraPeriod},
}

// ProfileFor resolves the built-in profile of c. A matching override replaces
// the prefix and, when non-zero, the era period.
func ProfileFor(c chain.Chain, overrides ...Profile) (Profile, error) {
	p, known := profiles[c]
	for _, o := range overrides {
		if o.Chain != c {
			continue
		}
		if !known {
			p = Profile{Chain: c, Name: fmt.Sprintf("substrate-%d", c), EraPeriod: defaultEraPeriod}
			known = true
		}
		p.SS58Prefix = o.SS58Prefix
		if o.EraPeriod != 0 {
			p.EraPeriod = o.EraPeriod
		}
	}
	if !known {
		return Profile{}, fmt.Errorf("%w: %d", ErrUnknownChain, c)
	}
	return p, nil
}

type RetryPolicy struct {
	Interval time.Duration
	Retries  uint64
}

var DefaultRetryPolicy = RetryPolicy{
	Interval: 500 * time.Millisecond,
	Retries:  3,
}

type nodeError struct {
	fragment string
	kind     error
}

// Substrate pool errors as surfaced in JSON-RPC messages (codes 1010-1014).
var nodeErrors = []nodeError{
	{"inability to pay some fees", chain.ErrInsufficientBalance},
	{"balance too low", chain.ErrInsufficientBalance},
	{"already imported", chain.ErrAlreadyKnown},
	{"temporarily banned", chain.ErrAlreadyKnown},
	{"transaction is outdated", chain.ErrNonceConsumed},
	{"bad signature", chain.ErrInvalidKey},
	{"bad proof", chain.ErrInvalidKey},
	{"invalid transaction", chain.ErrRejected},
	{"priority is too low", chain.ErrRejected},
	{"unknown transaction", chain.ErrRejected},
}
