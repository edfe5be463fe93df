package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

// FromBooking writes the response for an error returned by the booking flow.
func FromBooking(c *gin.Context, err error) {
	if ve, ok := booking.AsValidation(err); ok {
		Invalid(c, ve.Field, ve.Code, ve.Message)
		return
	}

	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		NotFound(c, "session_not_found", "Your booking session has expired. Please start again.")
	case errors.Is(err, booking.ErrVersionConflict):
		Conflict(c, "session_conflict", "Your booking was updated from another request. Please retry.")
	case errors.Is(err, booking.ErrSubmissionInProgress):
		Conflict(c, "submission_in_progress", "Your booking is already being submitted.")
	case errors.Is(err, booking.ErrReservationFailed):
		BadGateway(c, "reservation_failed",
			"We could not confirm your booking right now. Please try again or contact us directly.")
	default:
		Internal(c, "internal_error", "Something went wrong. Please try again.")
	}
}
