package services

import "errors"

// Sentinel errors returned by services. Handlers map these to HTTP statuses;
// anything else is treated as an internal error.
var (
	// ErrValidation marks malformed or out-of-range client input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated marks a missing, invalid or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnknownReward is returned when a claim id matches neither the
	// token reward pattern nor a known badge id.
	ErrUnknownReward = errors.New("unknown reward")

	// ErrSignerUnavailable means no signing key is configured. This is a
	// deployment configuration error, not a transient failure.
	ErrSignerUnavailable = errors.New("reward signer not configured")

	// ErrConcurrentClaim is returned when a claim lost a uniqueness race
	// on (wallet, nonce) or (wallet, badge). The caller should retry; a
	// fresh nonce will be computed.
	ErrConcurrentClaim = errors.New("concurrent claim conflict")
)
