package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID string
	ScheduledAt   time.Time
	UserID        string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	now := uc.now()
	if err := domain.EnsureFuture(in.ScheduledAt, now); err != nil {
		return nil, err
	}

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return notFound(err)
		}

		if err := domain.Reschedule(ap, in.ScheduledAt, now); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{"scheduled_at": ap.ScheduledAt},
	})

	return ap, nil
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
