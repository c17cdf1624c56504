package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
)

type DeactivateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewDeactivateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeactivateClient {
	return &DeactivateClient{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute soft-deletes the client. Repeated calls keep the first deletedAt.
func (uc *DeactivateClient) Execute(
	ctx context.Context,
	id string,
	userID string,
) (*models.Client, error) {

	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if c.IsDeleted() {
		return c, nil
	}

	now := uc.now()
	c.DeletedAt = &now
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(userID),
		Action:   "client_deactivated",
		Entity:   "client",
		EntityID: audit.Ptr(c.ID),
	})

	return c, nil
}
