package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryable marks transient I/O failures (endpoint unreachable, timeouts).
	ErrRetryable = errors.New("retryable chain error")
	// ErrInsufficientBalance is fatal and surfaced to the caller.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidKey signals unusable or corrupted signing material.
	ErrInvalidKey = errors.New("invalid wallet key")
	// ErrAlreadyKnown means the network already holds the transaction.
	ErrAlreadyKnown = errors.New("transaction already known")
	// ErrNonceConsumed means the chain already processed a transaction at this
	// nonce, which may or may not be the one being sent.
	ErrNonceConsumed = errors.New("nonce already consumed on chain")
	// ErrInvalidPayload is returned for payloads the adapter cannot decode.
	ErrInvalidPayload = errors.New("invalid transaction payload")
	// ErrRejected covers any other definitive rejection by the node.
	ErrRejected = errors.New("transaction rejected")
)

func Retryable(err error) error {
	return fmt.Errorf("%w: %w", ErrRetryable, err)
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryable)
}

// IsFatal reports errors for which resubmission can never succeed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidKey) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrNonceConsumed) ||
		errors.Is(err, ErrRejected)
}

// Alertable reports errors that point at corrupted configuration rather than chain state.
func Alertable(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}
