package clientfield

import (
	"context"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

type OrderUpdate struct {
	ID    string
	Order int
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	ListActive(ctx context.Context) ([]models.ClientField, error)
	GetByID(ctx context.Context, id string) (*models.ClientField, error)

	// NameTaken reports whether another field (not excludeID) owns name exactly.
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)

	Create(ctx context.Context, f *models.ClientField) error
	Update(ctx context.Context, f *models.ClientField) error

	// SetOrder returns gorm.ErrRecordNotFound when id does not exist.
	SetOrder(ctx context.Context, id string, order int) error

	CountClients(ctx context.Context) (int64, error)
	CountClientsWithValue(ctx context.Context, fieldID string) (int64, error)
}
