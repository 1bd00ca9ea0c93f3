package bridge

import (
	"errors"
	"fmt"
)

// Errors returned while building a Dispatcher
var (
	ErrEmptyCapabilityName      = errors.New("capability name must not be empty")
	ErrDuplicateCapability      = errors.New("capability already registered")
	ErrCapabilityHandlerMissing = errors.New("capability handler is nil")
)

// Failure codes carried by HandlerFailure
const (
	CodeInvalidArgument     = "invalid_argument"
	CodeHandlerError        = "handler_error"
	CodeHandlerPanic        = "handler_panic"
	CodeUnsupportedPlatform = "unsupported_platform"
)

// HandlerFailure is the non-success outcome of a matched call. Handlers may
// return one directly to choose the code; it reaches the caller unchanged.
type HandlerFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewHandlerFailure creates a HandlerFailure with the given code
func NewHandlerFailure(code, format string, args ...interface{}) *HandlerFailure {
	return &HandlerFailure{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (f *HandlerFailure) Error() string {
	if f.Message == "" {
		return f.Code
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// IsHandlerFailure reports whether err is (or wraps) a HandlerFailure
func IsHandlerFailure(err error) bool {
	var f *HandlerFailure
	return errors.As(err, &f)
}
