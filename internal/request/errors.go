package request

import "errors"

var (
	// ErrUnsupportedRequestType is returned for an unrecognized request.type value
	ErrUnsupportedRequestType = errors.New("unsupported request type")

	// ErrApplicationIDMismatch is returned when a request was addressed to a
	// different application than the one registered
	ErrApplicationIDMismatch = errors.New("request application id mismatch")

	// ErrMalformedRequest is returned when the request body is not valid JSON
	ErrMalformedRequest = errors.New("malformed request body")
)
