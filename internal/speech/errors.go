package speech

import "errors"

var (
	// ErrInvalidLanguage is returned when a language code is not supported
	ErrInvalidLanguage = errors.New("unsupported language code")

	// ErrTypeMismatch is returned when a SpeechSet is nested inside another SpeechSet
	ErrTypeMismatch = errors.New("speech set cannot contain another speech set")

	// ErrUnsupportedSpeechInput is returned when a message shape cannot be resolved
	ErrUnsupportedSpeechInput = errors.New("unsupported speech input")
)
