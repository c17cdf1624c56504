package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	"github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/domain/clientfield"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
	"github.com/BruksfildServices01/client-followup/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateClientInput struct {
	Whatsapp    string            `json:"whatsapp"`
	Notes       *string           `json:"notes"`
	AssignedTo  *string           `json:"assigned_to"`
	UserID      string            `json:"user_id"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	FieldValues []FieldValueInput `json:"field_values"`
	TagIDs      []string          `json:"tag_ids"`
}

type CreateClientResult struct {
	Client      *models.Client      `json:"client"`
	Appointment *models.Appointment `json:"appointment"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateClient) Execute(
	ctx context.Context,
	in CreateClientInput,
) (*CreateClientResult, error) {

	// --------------------------------------------------
	// 1. Shape
	// --------------------------------------------------
	if !validators.IsWhatsApp(in.Whatsapp) {
		return nil, httperr.ErrValidation("invalid_whatsapp", "whatsapp must be in +<country><number> format")
	}
	if in.AssignedTo == nil || *in.AssignedTo == "" {
		return nil, httperr.ErrValidation("assignee_required", "assigned_to is required")
	}

	values := dedupeValues(in.FieldValues)
	tagIDs := uniqueIDs(in.TagIDs)
	res := &CreateClientResult{}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// 2. Assignee
		// --------------------------------------------------
		ok, err := tx.UserExists(ctx, *in.AssignedTo)
		if err != nil {
			return err
		}
		if !ok {
			return errUserNotFound
		}

		// --------------------------------------------------
		// 3. Required fields, by name
		// --------------------------------------------------
		active, err := tx.ListActiveFields(ctx)
		if err != nil {
			return err
		}
		given := make(map[string]string, len(values))
		for _, v := range values {
			given[v.FieldID] = v.Value
		}
		if missing := clientfield.MissingRequired(active, given); len(missing) > 0 {
			return httperr.ErrBusiness(
				"missing_required_fields",
				fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			)
		}

		// --------------------------------------------------
		// 4. Tags
		// --------------------------------------------------
		if len(tagIDs) > 0 {
			n, err := tx.CountTags(ctx, tagIDs)
			if err != nil {
				return err
			}
			if n != int64(len(tagIDs)) {
				return errTagNotFound
			}
		}

		// --------------------------------------------------
		// 5. Client, values, tags, first appointment, history
		// --------------------------------------------------
		c := &models.Client{
			Whatsapp:   in.Whatsapp,
			Notes:      in.Notes,
			AssignedTo: in.AssignedTo,
		}
		if err := tx.Create(ctx, c); err != nil {
			return err
		}

		rows, err := resolveValues(ctx, tx, c.ID, values)
		if err != nil {
			return err
		}
		if err := tx.UpsertFieldValues(ctx, rows); err != nil {
			return err
		}

		if err := tx.LinkTags(ctx, c.ID, tagIDs); err != nil {
			return err
		}

		ap := appointment.New(c.ID, *in.AssignedTo, in.UserID, in.ScheduledAt)
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		if err := tx.AppendHistory(ctx, &models.ClientHistory{
			ClientID:  c.ID,
			Type:      models.HistoryCreated,
			Data:      datatypes.JSON(payload),
			CreatedBy: in.UserID,
			CreatedAt: timezone.Now(),
		}); err != nil {
			return err
		}

		res.Client = c
		res.Appointment = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "client_created",
		Entity:   "client",
		EntityID: audit.Ptr(res.Client.ID),
		Metadata: map[string]any{"appointment_id": res.Appointment.ID},
	})

	return res, nil
}
