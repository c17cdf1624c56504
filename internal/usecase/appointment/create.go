package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    string
	ScheduledAt time.Time
	UserID      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := domain.EnsureFuture(in.ScheduledAt, uc.now()); err != nil {
		return nil, err
	}

	var ap *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// 1. Client must exist, be active and have an assignee
		// --------------------------------------------------
		client, err := tx.GetClient(ctx, in.ClientID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return errClientNotFound
			}
			return err
		}
		if client.IsDeleted() {
			return errClientNotFound
		}
		if client.AssignedTo == nil {
			return httperr.ErrBusiness("client_without_assignee", "Client has no assignee")
		}

		// --------------------------------------------------
		// 2. One OPEN appointment per client
		// --------------------------------------------------
		open, err := tx.HasOpenAppointment(ctx, client.ID)
		if err != nil {
			return err
		}
		if open {
			return errOpenAppointmentExists
		}

		// --------------------------------------------------
		// 3. Assignee comes from the client, not the caller
		// --------------------------------------------------
		ap = domain.New(client.ID, *client.AssignedTo, in.UserID, in.ScheduledAt)
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return errOpenAppointmentExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{"client_id": ap.ClientID, "scheduled_at": ap.ScheduledAt},
	})

	return ap, nil
}
