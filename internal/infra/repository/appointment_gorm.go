package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// GetClient locks the client row so concurrent creates for the same client
// queue behind each other.
func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AppointmentGormRepository) GetClientForSnapshot(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Preload("FieldValues.Field").
		Preload("Tags.Tag").
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) HasOpenAppointment(
	ctx context.Context,
	clientID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ? AND status = ?", clientID, string(domain.StatusOpen)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Assignee").
		Preload("Creator").
		Preload("Interaction").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.StartDate != nil {
		q = q.Where("scheduled_at >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		q = q.Where("scheduled_at <= ?", f.EndDate.UTC())
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Client").
		Preload("Assignee").
		Order("scheduled_at ASC").
		Order("id ASC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// --------------------------------------------------
// Interaction
// --------------------------------------------------

func (r *AppointmentGormRepository) HasInteraction(
	ctx context.Context,
	appointmentID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateInteraction(
	ctx context.Context,
	in *models.Interaction,
) error {
	return r.db.WithContext(ctx).Create(in).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
