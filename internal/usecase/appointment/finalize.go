package appointment

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/domain/snapshot"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type FinalizeAppointmentInput struct {
	AppointmentID       string
	UserID              string
	StartedAt           time.Time
	Summary             string
	Outcome             string
	NextAppointmentDate time.Time
}

type FinalizeResult struct {
	Interaction     *models.Interaction `json:"interaction"`
	Appointment     *models.Appointment `json:"appointment"`
	NextAppointment *models.Appointment `json:"next_appointment"`
}

// ======================================================
// USE CASE
// ======================================================

type FinalizeAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewFinalizeAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinalizeAppointment {
	return &FinalizeAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute records the interaction, closes the appointment and opens the
// follow-up in one transaction.
func (uc *FinalizeAppointment) Execute(
	ctx context.Context,
	in FinalizeAppointmentInput,
) (*FinalizeResult, error) {

	now := uc.now()
	if err := domain.EnsureFuture(in.NextAppointmentDate, now); err != nil {
		return nil, err
	}

	res := &FinalizeResult{}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// 1. Appointment must be OPEN and not yet recorded
		// --------------------------------------------------
		ap, err := tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return notFound(err)
		}
		if err := domain.CanFinalize(domain.Status(ap.Status)); err != nil {
			return err
		}

		exists, err := tx.HasInteraction(ctx, ap.ID)
		if err != nil {
			return err
		}
		if exists {
			return errAlreadyFinalized
		}

		// --------------------------------------------------
		// 2. Interaction with a by-value snapshot of the client
		// --------------------------------------------------
		client, err := tx.GetClientForSnapshot(ctx, ap.ClientID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return errClientNotFound
			}
			return err
		}

		interaction := &models.Interaction{
			AppointmentID: ap.ID,
			ClientID:      ap.ClientID,
			UserID:        in.UserID,
			StartedAt:     in.StartedAt.UTC(),
			EndedAt:       now,
			Summary:       in.Summary,
			Outcome:       in.Outcome,
			Snapshot:      datatypes.NewJSONType(snapshot.Build(client, now)),
		}
		if err := tx.CreateInteraction(ctx, interaction); err != nil {
			if httperr.IsExclusionConflict(err) {
				return errAlreadyFinalized
			}
			return err
		}

		// --------------------------------------------------
		// 3. Close the current appointment
		// --------------------------------------------------
		if err := domain.MarkDone(ap); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Follow-up keeps this appointment's assignee
		// --------------------------------------------------
		next := domain.New(ap.ClientID, ap.AssignedTo, in.UserID, in.NextAppointmentDate)
		if err := tx.CreateAppointment(ctx, next); err != nil {
			if httperr.IsExclusionConflict(err) {
				return errOpenAppointmentExists
			}
			return err
		}

		res.Interaction = interaction
		res.Appointment = ap
		res.NextAppointment = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   "appointment_finalized",
		Entity:   "appointment",
		EntityID: audit.Ptr(res.Appointment.ID),
		Metadata: map[string]any{
			"interaction_id":      res.Interaction.ID,
			"next_appointment_id": res.NextAppointment.ID,
		},
	})

	return res, nil
}
