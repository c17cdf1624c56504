package client

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/domain/clientfield"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type FieldValueInput struct {
	FieldID string `json:"field_id" binding:"required"`
	Value   string `json:"value"`
}

// dedupeValues keeps the last value given for each field, in first-seen order.
func dedupeValues(in []FieldValueInput) []FieldValueInput {
	pos := make(map[string]int, len(in))
	out := make([]FieldValueInput, 0, len(in))
	for _, v := range in {
		if i, ok := pos[v.FieldID]; ok {
			out[i] = v
			continue
		}
		pos[v.FieldID] = len(out)
		out = append(out, v)
	}
	return out
}

// resolveValues checks every value against its field definition and returns
// rows ready to upsert for clientID.
func resolveValues(
	ctx context.Context,
	repo domain.Repository,
	clientID string,
	in []FieldValueInput,
) ([]models.ClientFieldValue, error) {

	if len(in) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(in))
	for _, v := range in {
		ids = append(ids, v.FieldID)
	}

	fields, err := repo.GetFieldsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.ClientField, len(fields))
	for i := range fields {
		byID[fields[i].ID] = &fields[i]
	}

	rows := make([]models.ClientFieldValue, 0, len(in))
	for _, v := range in {
		f, ok := byID[v.FieldID]
		if !ok {
			return nil, errFieldNotFound
		}
		if !f.Active {
			return nil, httperr.ErrBusiness(
				"field_inactive",
				fmt.Sprintf("field %q is deactivated", f.Name),
			)
		}

		value, err := clientfield.ValidateValue(f, v.Value)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.ClientFieldValue{
			ClientID: clientID,
			FieldID:  f.ID,
			Value:    value,
		})
	}
	return rows, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
