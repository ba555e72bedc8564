// Package errors defines custom error types for the cipherkit primitives
// library. Errors fall into five kinds, each surfaced as a distinct
// sentinel so callers can branch without string matching. Messages never
// include key material or generator state.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the five failure categories every
// engine reports at its call boundary.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors outside the library.
	KindUnknown Kind = iota

	// KindConfiguration covers unsupported parameters: key sizes, digest
	// types, rounds counts, negative lengths.
	KindConfiguration

	// KindNotInitialized covers operations that require a prior Initialize.
	KindNotInitialized

	// KindLimitExceeded covers exhausted output, request, or reseed budgets.
	KindLimitExceeded

	// KindEntropyUnavailable covers providers that cannot produce bytes.
	KindEntropyUnavailable

	// KindAuthenticationFailure covers AEAD tag mismatches.
	KindAuthenticationFailure
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindNotInitialized:
		return "NotInitialized"
	case KindLimitExceeded:
		return "LimitExceeded"
	case KindEntropyUnavailable:
		return "EntropyUnavailable"
	case KindAuthenticationFailure:
		return "AuthenticationFailure"
	default:
		return "Unknown"
	}
}

// Sentinel errors: configuration.
var (
	// ErrInvalidKeySize indicates a key is not one of the legal key sizes.
	ErrInvalidKeySize = errors.New("config: invalid key size")

	// ErrInvalidNonceSize indicates a nonce has an unsupported length.
	ErrInvalidNonceSize = errors.New("config: invalid nonce size")

	// ErrInvalidInfoSize indicates an info/distribution code exceeds the
	// engine's maximum.
	ErrInvalidInfoSize = errors.New("config: invalid info size")

	// ErrInvalidRounds indicates an unsupported rounds count.
	ErrInvalidRounds = errors.New("config: invalid rounds count")

	// ErrInvalidSeedSize indicates a reseed value is not a legal size.
	ErrInvalidSeedSize = errors.New("config: invalid seed size")

	// ErrInvalidLength indicates a negative or out-of-range length or offset.
	ErrInvalidLength = errors.New("config: invalid length or offset")

	// ErrInvalidDigest indicates an unsupported or nil digest was injected.
	ErrInvalidDigest = errors.New("config: invalid digest")
)

// Sentinel errors: state.
var (
	// ErrNotInitialized indicates the engine requires Initialize first.
	ErrNotInitialized = errors.New("state: engine is not initialized")

	// ErrWrongDirection indicates a transform was invoked against the
	// direction the engine was initialized for.
	ErrWrongDirection = errors.New("state: engine initialized for the opposite direction")
)

// Sentinel errors: limits.
var (
	// ErrRequestTooLarge indicates a single generate request exceeded the
	// maximum request size.
	ErrRequestTooLarge = errors.New("limit: request exceeds maximum size")

	// ErrOutputExhausted indicates the generator reached its cumulative
	// output bound.
	ErrOutputExhausted = errors.New("limit: maximum generator output exceeded")

	// ErrReseedExhausted indicates the generator reached its reseed bound.
	ErrReseedExhausted = errors.New("limit: maximum reseed count exceeded")
)

// Sentinel errors: entropy.
var (
	// ErrEntropyUnavailable indicates no usable entropy source exists.
	ErrEntropyUnavailable = errors.New("entropy: no usable entropy source available")
)

// Sentinel errors: authentication.
var (
	// ErrAuthenticationFailed indicates AEAD authentication failed; no
	// plaintext is released.
	ErrAuthenticationFailed = errors.New("aead: authentication failed")
)

// KindOf reports the failure category of err, or KindUnknown for errors
// that did not originate in this library.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidKeySize),
		errors.Is(err, ErrInvalidNonceSize),
		errors.Is(err, ErrInvalidInfoSize),
		errors.Is(err, ErrInvalidRounds),
		errors.Is(err, ErrInvalidSeedSize),
		errors.Is(err, ErrInvalidLength),
		errors.Is(err, ErrInvalidDigest):
		return KindConfiguration
	case errors.Is(err, ErrNotInitialized),
		errors.Is(err, ErrWrongDirection):
		return KindNotInitialized
	case errors.Is(err, ErrRequestTooLarge),
		errors.Is(err, ErrOutputExhausted),
		errors.Is(err, ErrReseedExhausted):
		return KindLimitExceeded
	case errors.Is(err, ErrEntropyUnavailable):
		return KindEntropyUnavailable
	case errors.Is(err, ErrAuthenticationFailed):
		return KindAuthenticationFailure
	default:
		return KindUnknown
	}
}

// CryptoError wraps a cryptographic error with the operation that failed.
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
