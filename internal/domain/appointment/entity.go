package appointment

import (
	"time"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func New(clientID, assignedTo, createdBy string, at time.Time) *models.Appointment {
	return &models.Appointment{
		ClientID:    clientID,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		ScheduledAt: at.UTC(),
		Status:      string(InitialStatus()),
	}
}

func Reschedule(ap *models.Appointment, at, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	if err := EnsureFuture(at, now); err != nil {
		return err
	}

	ap.ScheduledAt = at.UTC()
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = &reason
	ap.CancelledAt = &now
	return nil
}

func MarkDone(ap *models.Appointment) error {
	if err := CanFinalize(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusDone)
	return nil
}
