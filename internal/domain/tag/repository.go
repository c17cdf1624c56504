package tag

import (
	"context"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

type WithCount struct {
	models.Tag
	ClientCount int64 `json:"client_count"`
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	ListWithCounts(ctx context.Context) ([]WithCount, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)

	// NameTaken compares case-insensitively, ignoring excludeID.
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)

	Create(ctx context.Context, t *models.Tag) error
	Update(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id string) error

	ClientExists(ctx context.Context, clientID string) (bool, error)
	Link(ctx context.Context, tagID, clientID string) error
	Unlink(ctx context.Context, tagID, clientID string) error
}
