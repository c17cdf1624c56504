package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ClientGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ClientGormRepository) ListActive(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("clients.deleted_at IS NULL")

	if term := strings.TrimSpace(f.Search); term != "" {
		matching := r.db.
			Model(&models.ClientFieldValue{}).
			Select("client_field_values.client_id").
			Joins("JOIN client_fields ON client_fields.id = client_field_values.field_id").
			Where("client_fields.name IN ?", domain.SearchFieldNames).
			Where("LOWER(client_field_values.value) LIKE ? ESCAPE '"+domain.LikeEscape+"'", domain.ContainsPattern(term))
		q = q.Where("clients.id IN (?)", matching)
	}

	if len(f.TagIDs) > 0 {
		tagged := r.db.
			Model(&models.ClientTag{}).
			Select("client_tags.client_id").
			Where("client_tags.tag_id IN ?", f.TagIDs)
		q = q.Where("clients.id IN (?)", tagged)
	}

	var clients []models.Client
	if err := q.
		Preload("Appointments", "status = ?", string(appointment.StatusOpen)).
		Preload("Assignee").
		Preload("FieldValues.Field").
		Preload("Tags.Tag").
		Order("clients.created_at ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) GetDetail(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("FieldValues.Field").
		Preload("Tags.Tag").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at ASC")
		}).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(c).Error
}

func (r *ClientGormRepository) Update(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(c).Error
}

// --------------------------------------------------
// Relations
// --------------------------------------------------

func (r *ClientGormRepository) UpsertFieldValues(
	ctx context.Context,
	values []models.ClientFieldValue,
) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&values).Error
}

func (r *ClientGormRepository) LinkTags(
	ctx context.Context,
	clientID string,
	tagIDs []string,
) error {
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]models.ClientTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, models.ClientTag{ClientID: clientID, TagID: id})
	}

	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}

func (r *ClientGormRepository) ReassignOpenAppointments(
	ctx context.Context,
	clientID string,
	userID string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ? AND status = ?", clientID, string(appointment.StatusOpen)).
		Update("assigned_to", userID)
	return res.RowsAffected, res.Error
}

func (r *ClientGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ClientGormRepository) AppendHistory(
	ctx context.Context,
	h *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ClientGormRepository) GetFieldsByIDs(
	ctx context.Context,
	ids []string,
) ([]models.ClientField, error) {

	var fields []models.ClientField
	if len(ids) == 0 {
		return fields, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *ClientGormRepository) ListActiveFields(
	ctx context.Context,
) ([]models.ClientField, error) {

	var fields []models.ClientField
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *ClientGormRepository) CountTags(
	ctx context.Context,
	ids []string,
) (int64, error) {

	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *ClientGormRepository) UserExists(
	ctx context.Context,
	id string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *ClientGormRepository) ListInteractions(
	ctx context.Context,
	clientID string,
	page int,
	pageSize int,
) ([]models.Interaction, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("client_id = ?", clientID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Interaction
	if err := q.
		Preload("User").
		Order("ended_at DESC").
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
