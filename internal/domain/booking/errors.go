package booking

import (
	"errors"
	"fmt"
)

var (
	ErrAvailabilityUnavailable = errors.New("availability unavailable")
	ErrReservationFailed       = errors.New("reservation failed")
	ErrMediaFetchFailed        = errors.New("media fetch failed")

	ErrSessionNotFound      = errors.New("booking session not found")
	ErrVersionConflict      = errors.New("booking session was modified concurrently")
	ErrStaleAvailability    = errors.New("availability does not match the selected date")
	ErrSubmissionInProgress = errors.New("booking submission already in progress")
)

// ValidationError blocks a transition. The session is left unchanged.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, code, message string) error {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func invalid(field, code, message string) error {
	return Invalid(field, code, message)
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
