package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/validators"
)

// UpdateClientInput is a partial update. Assignment changes go through
// TransferClient.
type UpdateClientInput struct {
	ID          string
	UserID      string
	Whatsapp    *string
	Notes       *string
	FieldValues []FieldValueInput
}

type UpdateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateClient) Execute(
	ctx context.Context,
	in UpdateClientInput,
) (*models.Client, error) {

	if in.Whatsapp != nil && !validators.IsWhatsApp(*in.Whatsapp) {
		return nil, httperr.ErrValidation("invalid_whatsapp", "whatsapp must be in +<country><number> format")
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		c, err := tx.GetByID(ctx, in.ID)
		if err != nil {
			return notFound(err)
		}
		if c.IsDeleted() {
			return httperr.ErrBusiness("client_deactivated", "cannot update a deactivated client")
		}

		if in.Whatsapp != nil {
			c.Whatsapp = *in.Whatsapp
		}
		if in.Notes != nil {
			if strings.TrimSpace(*in.Notes) == "" {
				c.Notes = nil
			} else {
				c.Notes = in.Notes
			}
		}
		if err := tx.Update(ctx, c); err != nil {
			return err
		}

		rows, err := resolveValues(ctx, tx, c.ID, dedupeValues(in.FieldValues))
		if err != nil {
			return err
		}
		return tx.UpsertFieldValues(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: audit.Ptr(in.ID),
	})

	return uc.repo.GetDetail(ctx, in.ID)
}
