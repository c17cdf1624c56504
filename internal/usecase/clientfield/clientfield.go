package clientfield

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/clientfield"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

var (
	errFieldNotFound = httperr.ErrNotFound("field_not_found", "Client field not found")
	errNameTaken     = httperr.ErrConflict("field_name_taken", "a field with this name already exists")
)

func notFound(err error) error {
	if httperr.IsRecordNotFound(err) {
		return errFieldNotFound
	}
	return err
}

// ======================================================
// LIST
// ======================================================

type ListFields struct {
	repo domain.Repository
}

func NewListFields(repo domain.Repository) *ListFields {
	return &ListFields{repo: repo}
}

func (uc *ListFields) Execute(ctx context.Context) ([]models.ClientField, error) {
	return uc.repo.ListActive(ctx)
}

// ======================================================
// CREATE
// ======================================================

type CreateFieldInput struct {
	Name     string
	Type     models.FieldType
	Required bool
	Options  []string
	Order    int
	UserID   string
}

type CreateField struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateField(repo domain.Repository, audit *audit.Dispatcher) *CreateField {
	return &CreateField{repo: repo, audit: audit}
}

func (uc *CreateField) Execute(ctx context.Context, in CreateFieldInput) (*models.ClientField, error) {
	name := strings.TrimSpace(in.Name)
	if err := domain.ValidateDefinition(name, in.Type, in.Options); err != nil {
		return nil, err
	}

	taken, err := uc.repo.NameTaken(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errNameTaken
	}

	f := &models.ClientField{
		Name:     name,
		Type:     in.Type,
		Required: in.Required,
		Active:   true,
		Order:    in.Order,
		Options:  append([]string{}, in.Options...),
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, errNameTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "client_field_created",
		Entity:   "client_field",
		EntityID: audit.Ptr(f.ID),
		Metadata: map[string]any{"name": f.Name, "type": f.Type},
	})

	return f, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateFieldInput has no Type: a field's type never changes.
type UpdateFieldInput struct {
	ID       string
	Name     *string
	Required *bool
	Order    *int
	Options  *[]string
	UserID   string
}

type UpdateField struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateField(repo domain.Repository, audit *audit.Dispatcher) *UpdateField {
	return &UpdateField{repo: repo, audit: audit}
}

func (uc *UpdateField) Execute(ctx context.Context, in UpdateFieldInput) (*models.ClientField, error) {
	f, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, notFound(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("invalid_name", "field name is required")
		}
		taken, err := uc.repo.NameTaken(ctx, name, f.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errNameTaken
		}
		f.Name = name
	}

	if in.Options != nil {
		if err := domain.ValidateOptionsUpdate(f, *in.Options); err != nil {
			return nil, err
		}
		f.Options = append([]string{}, (*in.Options)...)
	}

	if in.Required != nil {
		f.Required = *in.Required
	}
	if in.Order != nil {
		f.Order = *in.Order
	}

	if err := uc.repo.Update(ctx, f); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, errNameTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "client_field_updated",
		Entity:   "client_field",
		EntityID: audit.Ptr(f.ID),
	})

	return f, nil
}

// ======================================================
// DEACTIVATE
// ======================================================

type DeactivateField struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeactivateField(repo domain.Repository, audit *audit.Dispatcher) *DeactivateField {
	return &DeactivateField{repo: repo, audit: audit}
}

// Execute hides the field. A required field can only be deactivated once
// every client has a value for it. Stored values are kept.
func (uc *DeactivateField) Execute(ctx context.Context, id, userID string) (*models.ClientField, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !f.Active {
		return f, nil
	}

	if f.Required {
		total, err := uc.repo.CountClients(ctx)
		if err != nil {
			return nil, err
		}
		filled, err := uc.repo.CountClientsWithValue(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		if filled < total {
			return nil, httperr.ErrBusiness(
				"required_field_in_use",
				fmt.Sprintf("cannot deactivate required field %q: %d clients have no value", f.Name, total-filled),
			)
		}
	}

	f.Active = false
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(userID),
		Action:   "client_field_deactivated",
		Entity:   "client_field",
		EntityID: audit.Ptr(f.ID),
	})

	return f, nil
}

// ======================================================
// REORDER
// ======================================================

type ReorderFields struct {
	repo domain.Repository
}

func NewReorderFields(repo domain.Repository) *ReorderFields {
	return &ReorderFields{repo: repo}
}

// Execute applies every order change or none.
func (uc *ReorderFields) Execute(ctx context.Context, items []domain.OrderUpdate) ([]models.ClientField, error) {
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		for _, it := range items {
			if err := tx.SetOrder(ctx, it.ID, it.Order); err != nil {
				return notFound(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.repo.ListActive(ctx)
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
