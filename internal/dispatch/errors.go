package dispatch

import "errors"

var (
	// ErrNoHandlerRegistered is returned when neither a specific nor a
	// default handler matches a request
	ErrNoHandlerRegistered = errors.New("no handler registered for request")

	// ErrVerifierRequired is returned when a dispatcher is built without a
	// verifier outside debug mode
	ErrVerifierRequired = errors.New("verifier is required unless debug mode is enabled")
)
