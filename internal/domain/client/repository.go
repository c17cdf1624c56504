package client

import (
	"context"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

// SearchFieldNames are the field names matched by the list search term.
var SearchFieldNames = []string{"Nome", "Empresa"}

type ListFilter struct {
	Search string
	TagIDs []string
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Client --------

	// ListActive returns non-deleted clients matching f with their OPEN
	// appointments, field values and tags preloaded. Unordered.
	ListActive(ctx context.Context, f ListFilter) ([]models.Client, error)

	// GetByID includes soft-deleted clients.
	GetByID(ctx context.Context, id string) (*models.Client, error)

	GetDetail(ctx context.Context, id string) (*models.Client, error)

	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error

	// -------- Relations --------
	UpsertFieldValues(ctx context.Context, values []models.ClientFieldValue) error
	LinkTags(ctx context.Context, clientID string, tagIDs []string) error
	ReassignOpenAppointments(ctx context.Context, clientID, userID string) (int64, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	AppendHistory(ctx context.Context, h *models.ClientHistory) error

	// -------- Lookups --------
	GetFieldsByIDs(ctx context.Context, ids []string) ([]models.ClientField, error)
	ListActiveFields(ctx context.Context) ([]models.ClientField, error)
	CountTags(ctx context.Context, ids []string) (int64, error)
	UserExists(ctx context.Context, id string) (bool, error)

	// -------- History --------
	ListInteractions(ctx context.Context, clientID string, page, pageSize int) ([]models.Interaction, int64, error)
}
