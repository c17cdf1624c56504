package appointment

import (
	"time"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusDone      Status = "DONE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports DONE and CANCELLED, which accept no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanReschedule(current Status) error {
	switch current {
	case StatusOpen:
		return nil
	case StatusDone:
		return httperr.ErrBusiness("appointment_done", "completed appointment cannot be rescheduled")
	default:
		return httperr.ErrBusiness("appointment_not_open", "only open appointments can be rescheduled")
	}
}

func CanCancel(current Status) error {
	switch current {
	case StatusOpen:
		return nil
	case StatusDone:
		return httperr.ErrBusiness("appointment_done", "completed appointment cannot be cancelled")
	case StatusCancelled:
		return httperr.ErrBusiness("appointment_cancelled", "appointment already cancelled")
	default:
		return httperr.ErrBusiness("appointment_not_open", "only open appointments can be cancelled")
	}
}

func CanFinalize(current Status) error {
	if current != StatusOpen {
		return httperr.ErrBusiness("appointment_not_open", "only open appointments can be finalized")
	}
	return nil
}

// EnsureFuture rejects times that are not strictly after now.
func EnsureFuture(at, now time.Time) error {
	if !at.After(now) {
		return httperr.ErrBusiness("date_not_in_future", "appointment date must be in the future")
	}
	return nil
}

func InitialStatus() Status {
	return StatusOpen
}
