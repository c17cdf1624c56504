package user

import (
	"context"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

type Summary struct {
	models.User
	ClientCount          int64 `json:"client_count"`
	OpenAppointmentCount int64 `json:"open_appointment_count"`
}

type Detail struct {
	models.User
	Clients          []models.Client      `json:"clients"`
	OpenAppointments []models.Appointment `json:"open_appointments"`
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	ListWithCounts(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)

	// EmailTaken ignores excludeID.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)

	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error

	GetCredential(ctx context.Context, userID string) (*models.Account, error)
	SaveCredential(ctx context.Context, a *models.Account) error
}
