package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/domain/auth"
	"github.com/workpulse/hr-backend-go/internal/domain/user"
	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
	"github.com/workpulse/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance lifecycle errors. State conflicts are 409: the
	// request was well-formed, the record just is not in the state it
	// assumed.
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		Conflict(w, "No active check-in today")
	case errors.Is(err, attendance.ErrInvalidCoordinates):
		BadRequest(w, "Coordinates out of range")
	case errors.Is(err, attendance.ErrNonMonotonicTime):
		BadRequest(w, "Check-out must be after check-in")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Work location errors
	case errors.Is(err, worklocation.ErrWorkLocationNotFound):
		NotFound(w, "Work location not found")
	case errors.Is(err, worklocation.ErrWorkLocationExists):
		Conflict(w, "Work location name already exists")

	// Auth and user errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
