package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingCredential  = errors.New("missing bot credential")
	ErrDocumentMissing    = errors.New("reference document not loaded")
)

// GenericFailure is what users see for anything that isn't a validation problem.
const GenericFailure = "Sorry, something went wrong! 🤔"

// ValidationError is a malformed or out-of-range user argument. Its message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// UserMessage returns the text that may be shown to an end user for err.
func UserMessage(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}

	return GenericFailure
}

// ProviderError is a failure reaching or parsing an external data source. Adapters absorb it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// DeliveryError is a failure to hand the final reply to the platform.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSendingReplyFailed, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// FatalConfigurationError stops startup.
type FatalConfigurationError struct {
	Key string
	Err error
}

func (e *FatalConfigurationError) Error() string {
	return fmt.Sprintf("fatal configuration error for %s: %v", e.Key, e.Err)
}

func (e *FatalConfigurationError) Unwrap() error {
	return e.Err
}
