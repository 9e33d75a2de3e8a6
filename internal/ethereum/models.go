package ethereum

import (
	"time"

	"chainrelay/internal/chain"
)

// RetryPolicy bounds how often a transient node error is retried before it is
// handed back to the caller.
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

// go-ethereum and most EVM node implementations only expose these as message text.
var nodeErrors = []nodeError{
	{"insufficient funds", chain.ErrInsufficientBalance},
	{"already known", chain.ErrAlreadyKnown},
	{"known transaction", chain.ErrAlreadyKnown},
	{"nonce too low", chain.ErrNonceConsumed},
	{"invalid sender", chain.ErrInvalidKey},
	{"invalid signature", chain.ErrInvalidKey},
	{"transaction underpriced", chain.ErrRejected},
	{"intrinsic gas too low", chain.ErrRejected},
	{"exceeds block gas limit", chain.ErrRejected},
	{"execution reverted", chain.ErrRejected},
	{"tx type not supported", chain.ErrRejected},
}
