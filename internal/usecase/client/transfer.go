package client

import (
	"context"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type TransferClientInput struct {
	ClientID      string
	NewAssigneeID string
	UserID        string
}

type TransferResult struct {
	Client                *models.Client `json:"client"`
	MovedOpenAppointments int64          `json:"moved_open_appointments"`
}

type TransferClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransferClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransferClient {
	return &TransferClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves the client and every OPEN appointment to the new assignee.
// Closed appointments keep whoever handled them.
func (uc *TransferClient) Execute(
	ctx context.Context,
	in TransferClientInput,
) (*TransferResult, error) {

	res := &TransferResult{}
	var previous *string

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		c, err := tx.GetByID(ctx, in.ClientID)
		if err != nil {
			return notFound(err)
		}
		if c.IsDeleted() {
			return httperr.ErrBusiness("client_deactivated", "cannot transfer a deactivated client")
		}

		ok, err := tx.UserExists(ctx, in.NewAssigneeID)
		if err != nil {
			return err
		}
		if !ok {
			return errUserNotFound
		}

		if c.AssignedTo != nil && *c.AssignedTo == in.NewAssigneeID {
			return httperr.ErrBusiness("same_assignee", "client is already assigned to this user")
		}

		previous = c.AssignedTo
		newID := in.NewAssigneeID
		c.AssignedTo = &newID
		if err := tx.Update(ctx, c); err != nil {
			return err
		}

		moved, err := tx.ReassignOpenAppointments(ctx, c.ID, newID)
		if err != nil {
			return err
		}

		res.Client = c
		res.MovedOpenAppointments = moved
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "client_transferred",
		Entity:   "client",
		EntityID: audit.Ptr(in.ClientID),
		Metadata: map[string]any{
			"from":  previous,
			"to":    in.NewAssigneeID,
			"moved": res.MovedOpenAppointments,
		},
	})

	return res, nil
}
