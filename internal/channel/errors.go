package channel

import "errors"

// Common errors for channel operations
var (
	ErrEmptyChannelName         = errors.New("channel name must not be empty")
	ErrChannelAlreadyRegistered = errors.New("channel already registered")
	ErrChannelNotFound          = errors.New("channel not registered")
	ErrNilDispatcher            = errors.New("dispatcher is nil")

	// Codec errors
	ErrMalformedCall   = errors.New("malformed method call")
	ErrMissingMethod   = errors.New("method call has no method name")
	ErrMalformedResult = errors.New("malformed method result")
	ErrUnencodable     = errors.New("result cannot be encoded")
)
