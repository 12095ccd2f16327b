package attendance

import "errors"

// Attendance domain errors
var (
	// Clock state conflicts
	ErrAlreadyClockedIn = errors.New("you have already clocked in")
	ErrNotClockedIn     = errors.New("you have not clocked in today")

	// Clock rule violations
	ErrOutsideClockInWindow  = errors.New("clock-in is not allowed at this hour")
	ErrOutsideClockOutWindow = errors.New("clock-out is not allowed at this hour")
	ErrWeekendNotAllowed     = errors.New("clocking is not allowed on weekends")
	ErrEntryTooSoon          = errors.New("too soon after the previous entry")

	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrUnauthorized     = errors.New("unauthorized to access this attendance record")
)
