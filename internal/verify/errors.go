package verify

import "errors"

var (
	// ErrMissingSignature is returned when the signature header is absent
	ErrMissingSignature = errors.New("signature header is required")

	// ErrInvalidSignature is returned when the signature does not match the
	// request body
	ErrInvalidSignature = errors.New("invalid request signature")

	// ErrInvalidPublicKey is returned when the configured key material
	// cannot be parsed into an RSA public key
	ErrInvalidPublicKey = errors.New("invalid verification public key")
)
