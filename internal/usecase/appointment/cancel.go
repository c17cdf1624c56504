package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
)

type CancelAppointmentInput struct {
	AppointmentID string
	Reason        string
	UserID        string
}

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, httperr.ErrValidation("cancel_reason_required", "cancel reason is required")
	}

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return notFound(err)
		}

		if err := domain.Cancel(ap, reason, uc.now()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{"reason": reason},
	})

	return ap, nil
}
