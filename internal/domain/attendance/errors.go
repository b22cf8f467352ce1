package attendance

import "errors"

// Attendance domain errors
var (
	// State conflicts: the stored record is left untouched.
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrNoActiveCheckIn  = errors.New("you have no active check-in today")

	// Validation: rejected before any mutation.
	ErrInvalidCoordinates = errors.New("coordinates are out of range")
	ErrNonMonotonicTime   = errors.New("check-out must be later than check-in")

	ErrRecordNotFound = errors.New("attendance record not found")
)
