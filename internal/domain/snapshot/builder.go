// Package snapshot freezes a client's mutable attributes by value.
package snapshot

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

// Build copies whatsapp, notes, every stored field value with the field's
// current name and type, and every linked tag's name and color. The client
// must be loaded with FieldValues.Field and Tags.Tag.
func Build(c *models.Client, capturedAt time.Time) models.InteractionSnapshot {
	type ordered struct {
		order int
		value models.SnapshotFieldValue
	}

	values := make([]ordered, 0, len(c.FieldValues))
	for _, fv := range c.FieldValues {
		if fv.Field == nil {
			continue
		}
		values = append(values, ordered{
			order: fv.Field.Order,
			value: models.SnapshotFieldValue{
				FieldName: fv.Field.Name,
				FieldType: fv.Field.Type,
				Value:     fv.Value,
			},
		})
	}
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].order != values[j].order {
			return values[i].order < values[j].order
		}
		return values[i].value.FieldName < values[j].value.FieldName
	})

	snap := models.InteractionSnapshot{
		Version:     models.SnapshotVersion,
		Whatsapp:    c.Whatsapp,
		Notes:       copyString(c.Notes),
		FieldValues: make([]models.SnapshotFieldValue, 0, len(values)),
		Tags:        make([]models.SnapshotTag, 0, len(c.Tags)),
		CapturedAt:  &capturedAt,
	}
	for _, v := range values {
		snap.FieldValues = append(snap.FieldValues, v.value)
	}

	for _, ct := range c.Tags {
		if ct.Tag == nil {
			continue
		}
		snap.Tags = append(snap.Tags, models.SnapshotTag{
			Name:  ct.Tag.Name,
			Color: copyString(ct.Tag.Color),
		})
	}
	sort.SliceStable(snap.Tags, func(i, j int) bool {
		return snap.Tags[i].Name < snap.Tags[j].Name
	})

	return snap
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
