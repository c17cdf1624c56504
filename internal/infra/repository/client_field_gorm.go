package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/clientfield"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type ClientFieldGormRepository struct {
	db *gorm.DB
}

func NewClientFieldGormRepository(db *gorm.DB) *ClientFieldGormRepository {
	return &ClientFieldGormRepository{db: db}
}

func (r *ClientFieldGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ClientFieldGormRepository{db: tx})
	})
}

func (r *ClientFieldGormRepository) ListActive(ctx context.Context) ([]models.ClientField, error) {
	var fields []models.ClientField
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *ClientFieldGormRepository) GetByID(ctx context.Context, id string) (*models.ClientField, error) {
	var f models.ClientField
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *ClientFieldGormRepository) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.ClientField{}).
		Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClientFieldGormRepository) Create(ctx context.Context, f *models.ClientField) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *ClientFieldGormRepository) Update(ctx context.Context, f *models.ClientField) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *ClientFieldGormRepository) SetOrder(ctx context.Context, id string, order int) error {
	res := r.db.WithContext(ctx).
		Model(&models.ClientField{}).
		Where("id = ?", id).
		Update("sort_order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountClients counts every client row, soft-deleted ones included.
func (r *ClientFieldGormRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Count(&count).Error
	return count, err
}

func (r *ClientFieldGormRepository) CountClientsWithValue(ctx context.Context, fieldID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientFieldValue{}).
		Where("field_id = ?", fieldID).
		Distinct("client_id").
		Count(&count).Error
	return count, err
}

// Compile-time check
var _ domain.Repository = (*ClientFieldGormRepository)(nil)
