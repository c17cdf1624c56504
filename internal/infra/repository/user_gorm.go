package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/user"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserGormRepository{db: tx})
	})
}

type countRow struct {
	UserID string
	Total  int64
}

func (r *UserGormRepository) countBy(
	ctx context.Context,
	model any,
	column string,
	where string,
	args ...any,
) (map[string]int64, error) {

	var rows []countRow
	if err := r.db.WithContext(ctx).
		Model(model).
		Select(column+" AS user_id, COUNT(*) AS total").
		Where(column+" IS NOT NULL").
		Where(where, args...).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.UserID] = rw.Total
	}
	return out, nil
}

func (r *UserGormRepository) ListWithCounts(ctx context.Context) ([]domain.Summary, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	clients, err := r.countBy(ctx, &models.Client{}, "assigned_to", "deleted_at IS NULL")
	if err != nil {
		return nil, err
	}

	open, err := r.countBy(ctx, &models.Appointment{}, "assigned_to", "status = ?", string(appointment.StatusOpen))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Summary, 0, len(users))
	for _, u := range users {
		out = append(out, domain.Summary{
			User:                 u,
			ClientCount:          clients[u.ID],
			OpenAppointmentCount: open[u.ID],
		})
	}
	return out, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetDetail(ctx context.Context, id string) (*domain.Detail, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &domain.Detail{User: *u}

	if err := r.db.WithContext(ctx).
		Where("assigned_to = ? AND deleted_at IS NULL", id).
		Order("created_at ASC").
		Find(&d.Clients).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("assigned_to = ? AND status = ?", id, string(appointment.StatusOpen)).
		Order("scheduled_at ASC").
		Find(&d.OpenAppointments).Error; err != nil {
		return nil, err
	}

	return d, nil
}

func (r *UserGormRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserGormRepository) GetCredential(ctx context.Context, userID string) (*models.Account, error) {
	var a models.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, models.ProviderCredential).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserGormRepository) SaveCredential(ctx context.Context, a *models.Account) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(a).Error
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
