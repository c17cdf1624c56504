package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/tag"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type TagGormRepository struct {
	db *gorm.DB
}

func NewTagGormRepository(db *gorm.DB) *TagGormRepository {
	return &TagGormRepository{db: db}
}

func (r *TagGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TagGormRepository{db: tx})
	})
}

func (r *TagGormRepository) ListWithCounts(ctx context.Context) ([]domain.WithCount, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}

	type row struct {
		TagID string
		Total int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.ClientTag{}).
		Select("tag_id, COUNT(*) AS total").
		Group("tag_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.TagID] = rw.Total
	}

	out := make([]domain.WithCount, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.WithCount{Tag: t, ClientCount: counts[t.ID]})
	}
	return out, nil
}

func (r *TagGormRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagGormRepository) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TagGormRepository) Create(ctx context.Context, t *models.Tag) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(t).Error
}

func (r *TagGormRepository) Update(ctx context.Context, t *models.Tag) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(t).Error
}

// Delete removes the tag and its client links. Callers run it inside Transaction.
func (r *TagGormRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("tag_id = ?", id).
		Delete(&models.ClientTag{}).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TagGormRepository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ? AND deleted_at IS NULL", clientID).
		Count(&count).Error
	return count > 0, err
}

func (r *TagGormRepository) Link(ctx context.Context, tagID, clientID string) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ClientTag{ClientID: clientID, TagID: tagID}).Error
}

func (r *TagGormRepository) Unlink(ctx context.Context, tagID, clientID string) error {
	return r.db.WithContext(ctx).
		Where("tag_id = ? AND client_id = ?", tagID, clientID).
		Delete(&models.ClientTag{}).Error
}

// Compile-time check
var _ domain.Repository = (*TagGormRepository)(nil)
