package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

func TestBuildCopiesByValue(t *testing.T) {
	notes := "prefers mornings"
	color := "#ff0000"
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	renda := &models.ClientField{Name: "Renda", Type: models.FieldTypeNumber, Order: 2}
	nome := &models.ClientField{Name: "Nome", Type: models.FieldTypeText, Order: 1}
	vip := &models.Tag{Name: "VIP", Color: &color}

	c := &models.Client{
		Whatsapp: "+5511999998888",
		Notes:    &notes,
		FieldValues: []models.ClientFieldValue{
			{Field: renda, Value: "10000"},
			{Field: nome, Value: "Ana"},
			{Value: "orphan"},
		},
		Tags: []models.ClientTag{{Tag: vip}, {}},
	}

	snap := Build(c, at)

	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.Equal(t, "+5511999998888", snap.Whatsapp)
	require.Len(t, snap.FieldValues, 2)
	assert.Equal(t, models.SnapshotFieldValue{FieldName: "Nome", FieldType: models.FieldTypeText, Value: "Ana"}, snap.FieldValues[0])
	assert.Equal(t, models.SnapshotFieldValue{FieldName: "Renda", FieldType: models.FieldTypeNumber, Value: "10000"}, snap.FieldValues[1])
	require.Len(t, snap.Tags, 1)
	assert.Equal(t, "VIP", snap.Tags[0].Name)

	// later mutation of the source leaves the snapshot untouched
	renda.Name = "Income"
	vip.Name = "Gold"
	color = "#000000"
	notes = "changed"

	assert.Equal(t, "Renda", snap.FieldValues[1].FieldName)
	assert.Equal(t, "VIP", snap.Tags[0].Name)
	assert.Equal(t, "#ff0000", *snap.Tags[0].Color)
	assert.Equal(t, "prefers mornings", *snap.Notes)
}

func TestSnapshotJSONShape(t *testing.T) {
	snap := Build(&models.Client{Whatsapp: "+15550001111"}, time.Unix(0, 0).UTC())

	b, err := json.Marshal(snap)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "field_values")
	assert.Contains(t, raw, "tags")
	assert.Equal(t, []any{}, raw["field_values"])
}

func TestOldSnapshotShapeStillDecodes(t *testing.T) {
	legacy := `{"whatsapp":"+15550001111","notes":null,"field_values":[{"field_name":"Nome","field_type":"TEXT","value":"Ana"}],"tags":[]}`

	var snap models.InteractionSnapshot
	require.NoError(t, json.Unmarshal([]byte(legacy), &snap))
	assert.Zero(t, snap.Version)
	assert.Nil(t, snap.CapturedAt)
	assert.Equal(t, "Ana", snap.FieldValues[0].Value)
}
