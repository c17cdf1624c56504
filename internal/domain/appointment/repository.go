package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

type ListFilter struct {
	Page     int
	PageSize int

	StartDate *time.Time
	EndDate   *time.Time
	Status    *Status
}

type Repository interface {
	// Transaction runs fn against a repository bound to one store transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Client --------
	GetClient(ctx context.Context, id string) (*models.Client, error)

	// GetClientForSnapshot loads field values with their definitions and tags.
	GetClientForSnapshot(ctx context.Context, id string) (*models.Client, error)

	// -------- Appointment --------
	HasOpenAppointment(ctx context.Context, clientID string) (bool, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// GetAppointmentForUpdate locks the row until the transaction ends.
	GetAppointmentForUpdate(ctx context.Context, id string) (*models.Appointment, error)

	GetAppointmentDetail(ctx context.Context, id string) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)

	// -------- Interaction --------
	HasInteraction(ctx context.Context, appointmentID string) (bool, error)

	CreateInteraction(ctx context.Context, in *models.Interaction) error
}
