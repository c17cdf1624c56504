package client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	infraRepo "github.com/BruksfildServices01/client-followup/internal/infra/repository"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/testutil"
	ucAppointment "github.com/BruksfildServices01/client-followup/internal/usecase/appointment"
)

type env struct {
	db    *gorm.DB
	owner *models.User
	other *models.User
	repo  *infraRepo.ClientGormRepository

	create     *CreateClient
	update     *UpdateClient
	deactivate *DeactivateClient
	transfer   *TransferClient
	list       *ListClients
	get        *GetClient
	history    *ClientHistory
}

func setup(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	repo := infraRepo.NewClientGormRepository(db)

	return &env{
		db:         db,
		owner:      testutil.CreateUser(t, db, "Owner", "owner@example.com"),
		other:      testutil.CreateUser(t, db, "Other", "other@example.com"),
		repo:       repo,
		create:     NewCreateClient(repo, nil),
		update:     NewUpdateClient(repo, nil),
		deactivate: NewDeactivateClient(repo, nil),
		transfer:   NewTransferClient(repo, nil),
		list:       NewListClients(repo),
		get:        NewGetClient(repo),
		history:    NewClientHistory(repo),
	}
}

func (e *env) count(t *testing.T, model any) int64 {
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func (e *env) input(values ...FieldValueInput) CreateClientInput {
	return CreateClientInput{
		Whatsapp:    "+5511999998888",
		AssignedTo:  &e.owner.ID,
		UserID:      e.other.ID,
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second),
		FieldValues: values,
	}
}

// ======================================================
// create
// ======================================================

func TestCreateWritesEverythingAtomically(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	nome := testutil.CreateField(t, e.db, models.ClientField{Name: "Nome", Type: models.FieldTypeText, Required: true, Active: true})
	renda := testutil.CreateField(t, e.db, models.ClientField{Name: "Renda", Type: models.FieldTypeNumber, Active: true, Order: 1})
	vip := testutil.CreateTag(t, e.db, "VIP", nil, e.owner.ID)

	in := e.input(
		FieldValueInput{FieldID: nome.ID, Value: " Ana "},
		FieldValueInput{FieldID: renda.ID, Value: "10000"},
	)
	in.TagIDs = []string{vip.ID, vip.ID}

	res, err := e.create.Execute(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "OPEN", res.Appointment.Status)
	assert.Equal(t, e.owner.ID, res.Appointment.AssignedTo)
	assert.Equal(t, e.other.ID, res.Appointment.CreatedBy)
	assert.True(t, in.ScheduledAt.Equal(res.Appointment.ScheduledAt))

	detail, err := e.get.Execute(ctx, res.Client.ID)
	require.NoError(t, err)
	require.Len(t, detail.FieldValues, 2)
	values := map[string]string{}
	for _, fv := range detail.FieldValues {
		values[fv.Field.Name] = fv.Value
	}
	assert.Equal(t, map[string]string{"Nome": "Ana", "Renda": "10000"}, values)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "VIP", detail.Tags[0].Tag.Name)

	var hist models.ClientHistory
	require.NoError(t, e.db.First(&hist, "client_id = ?", res.Client.ID).Error)
	assert.Equal(t, models.HistoryCreated, hist.Type)
	assert.Equal(t, e.other.ID, hist.CreatedBy)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(hist.Data, &payload))
	assert.Equal(t, "+5511999998888", payload["whatsapp"])
}

func TestCreateReportsMissingRequiredFieldsByName(t *testing.T) {
	e := setup(t)

	testutil.CreateField(t, e.db, models.ClientField{Name: "Nome", Type: models.FieldTypeText, Required: true, Active: true})
	testutil.CreateField(t, e.db, models.ClientField{Name: "Empresa", Type: models.FieldTypeText, Required: true, Active: true, Order: 1})
	testutil.CreateField(t, e.db, models.ClientField{Name: "Legado", Type: models.FieldTypeText, Required: true, Active: false})

	_, err := e.create.Execute(context.Background(), e.input())
	assert.EqualError(t, err, "missing required fields: Nome, Empresa")
	assert.Equal(t, httperr.KindBusiness, httperr.KindOf(err))
	assert.Zero(t, e.count(t, &models.Client{}))
}

func TestCreateRollsBackOnInvalidValue(t *testing.T) {
	e := setup(t)
	renda := testutil.CreateField(t, e.db, models.ClientField{Name: "Renda", Type: models.FieldTypeNumber, Active: true})

	_, err := e.create.Execute(context.Background(), e.input(FieldValueInput{FieldID: renda.ID, Value: "lots"}))
	assert.True(t, httperr.IsBusiness(err, "invalid_field_value"))

	assert.Zero(t, e.count(t, &models.Client{}))
	assert.Zero(t, e.count(t, &models.Appointment{}))
	assert.Zero(t, e.count(t, &models.ClientHistory{}))
}

func TestCreateRejections(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	old := testutil.CreateField(t, e.db, models.ClientField{Name: "Old", Type: models.FieldTypeText, Active: false})

	in := e.input()
	in.Whatsapp = "11999998888"
	_, err := e.create.Execute(ctx, in)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	in = e.input()
	in.AssignedTo = nil
	_, err = e.create.Execute(ctx, in)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	in = e.input()
	ghost := "ghost"
	in.AssignedTo = &ghost
	_, err = e.create.Execute(ctx, in)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	in = e.input()
	in.TagIDs = []string{"missing-tag"}
	_, err = e.create.Execute(ctx, in)
	assert.EqualError(t, err, "Tag not found")

	_, err = e.create.Execute(ctx, e.input(FieldValueInput{FieldID: "missing-field", Value: "x"}))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = e.create.Execute(ctx, e.input(FieldValueInput{FieldID: old.ID, Value: "x"}))
	assert.True(t, httperr.IsBusiness(err, "field_inactive"))

	assert.Zero(t, e.count(t, &models.Client{}))
}

// ======================================================
// list / get
// ======================================================

func TestListSortsByNextOpenAppointment(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	mk := func() *models.Client {
		return testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)
	}

	noOpen := mk()
	testutil.CreateAppointment(t, e.db, noOpen.ID, e.owner.ID, base.Add(-2*time.Hour), "DONE")
	t1 := mk()
	testutil.CreateAppointment(t, e.db, t1.ID, e.owner.ID, base.Add(time.Hour), "OPEN")
	t48 := mk()
	testutil.CreateAppointment(t, e.db, t48.ID, e.owner.ID, base.Add(48*time.Hour), "OPEN")
	t24 := mk()
	testutil.CreateAppointment(t, e.db, t24.ID, e.owner.ID, base.Add(24*time.Hour), "OPEN")

	deleted := mk()
	now := base
	require.NoError(t, e.db.Model(deleted).Update("deleted_at", &now).Error)

	page, err := e.list.Execute(ctx, ListClientsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)

	got := make([]string, 0, len(page.Items))
	for _, c := range page.Items {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{t1.ID, t24.ID, t48.ID, noOpen.ID}, got)

	page, err = e.list.Execute(ctx, ListClientsInput{Page: 2, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, noOpen.ID, page.Items[0].ID)
}

func TestListSearchAndTagFilter(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	nome := testutil.CreateField(t, e.db, models.ClientField{Name: "Nome", Type: models.FieldTypeText, Active: true})
	cidade := testutil.CreateField(t, e.db, models.ClientField{Name: "Cidade", Type: models.FieldTypeText, Active: true})
	red := testutil.CreateTag(t, e.db, "Red", nil, e.owner.ID)
	blue := testutil.CreateTag(t, e.db, "Blue", nil, e.owner.ID)

	ana := testutil.CreateClient(t, e.db, "+5511999998881", &e.owner.ID)
	bia := testutil.CreateClient(t, e.db, "+5511999998882", &e.owner.ID)
	caio := testutil.CreateClient(t, e.db, "+5511999998883", &e.owner.ID)

	require.NoError(t, e.db.Create(&[]models.ClientFieldValue{
		{ClientID: ana.ID, FieldID: nome.ID, Value: "Ana Souza"},
		{ClientID: bia.ID, FieldID: cidade.ID, Value: "Souza City"},
		{ClientID: caio.ID, FieldID: nome.ID, Value: "Caio"},
	}).Error)
	require.NoError(t, e.db.Create(&[]models.ClientTag{
		{ClientID: ana.ID, TagID: red.ID},
		{ClientID: bia.ID, TagID: blue.ID},
	}).Error)

	page, err := e.list.Execute(ctx, ListClientsInput{Search: "souza"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ana.ID, page.Items[0].ID)

	page, err = e.list.Execute(ctx, ListClientsInput{TagIDs: []string{red.ID, blue.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = e.list.Execute(ctx, ListClientsInput{TagIDs: []string{blue.ID}, Search: "ana"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListSearchMatchesWildcardsLiterally(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	nome := testutil.CreateField(t, e.db, models.ClientField{Name: "Nome", Type: models.FieldTypeText, Active: true})
	ana := testutil.CreateClient(t, e.db, "+5511999998881", &e.owner.ID)
	snake := testutil.CreateClient(t, e.db, "+5511999998882", &e.owner.ID)

	require.NoError(t, e.db.Create(&[]models.ClientFieldValue{
		{ClientID: ana.ID, FieldID: nome.ID, Value: "Ana Souza"},
		{ClientID: snake.ID, FieldID: nome.ID, Value: "ana_souza 100%"},
	}).Error)

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{snake.ID}},
		{"A_a", nil},
		{"a_s", []string{snake.ID}},
		{"ana", []string{ana.ID, snake.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			page, err := e.list.Execute(ctx, ListClientsInput{Search: tt.search})
			require.NoError(t, err)

			var got []string
			for _, c := range page.Items {
				got = append(got, c.ID)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestGetHidesDeletedClient(t *testing.T) {
	e := setup(t)
	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)

	_, err := e.deactivate.Execute(context.Background(), c.ID, e.owner.ID)
	require.NoError(t, err)

	_, err = e.get.Execute(context.Background(), c.ID)
	assert.EqualError(t, err, "Client not found")

	_, err = e.get.Execute(context.Background(), "missing")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

// ======================================================
// update / deactivate
// ======================================================

func TestUpdateUpsertsFieldValues(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	nome := testutil.CreateField(t, e.db, models.ClientField{Name: "Nome", Type: models.FieldTypeText, Active: true})
	vip := testutil.CreateField(t, e.db, models.ClientField{Name: "VIP", Type: models.FieldTypeCheckbox, Active: true})
	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)
	require.NoError(t, e.db.Create(&models.ClientFieldValue{ClientID: c.ID, FieldID: nome.ID, Value: "Ana"}).Error)

	notes := "call after 6pm"
	got, err := e.update.Execute(ctx, UpdateClientInput{
		ID:    c.ID,
		Notes: &notes,
		FieldValues: []FieldValueInput{
			{FieldID: nome.ID, Value: "Ana Maria"},
			{FieldID: vip.ID, Value: "true"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)
	assert.Equal(t, "+5511999998888", got.Whatsapp)

	assert.Equal(t, int64(2), e.count(t, &models.ClientFieldValue{}))
	var stored models.ClientFieldValue
	require.NoError(t, e.db.First(&stored, "client_id = ? AND field_id = ?", c.ID, nome.ID).Error)
	assert.Equal(t, "Ana Maria", stored.Value)
}

func TestUpdateRejectsDeactivatedClient(t *testing.T) {
	e := setup(t)
	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)
	_, err := e.deactivate.Execute(context.Background(), c.ID, "")
	require.NoError(t, err)

	wa := "+5511988887777"
	_, err = e.update.Execute(context.Background(), UpdateClientInput{ID: c.ID, Whatsapp: &wa})
	assert.EqualError(t, err, "cannot update a deactivated client")
}

func TestDeactivateIsIdempotent(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)

	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	e.deactivate.now = func() time.Time { return first }
	a, err := e.deactivate.Execute(ctx, c.ID, "")
	require.NoError(t, err)
	require.NotNil(t, a.DeletedAt)

	e.deactivate.now = func() time.Time { return first.Add(time.Hour) }
	b, err := e.deactivate.Execute(ctx, c.ID, "")
	require.NoError(t, err)
	require.NotNil(t, b.DeletedAt)
	assert.True(t, first.Equal(*b.DeletedAt))

	_, err = e.deactivate.Execute(ctx, "missing", "")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

// ======================================================
// transfer
// ======================================================

func TestTransferMovesOnlyOpenAppointments(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()

	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)
	open := testutil.CreateAppointment(t, e.db, c.ID, e.owner.ID, now.Add(24*time.Hour), "OPEN")
	done := testutil.CreateAppointment(t, e.db, c.ID, e.owner.ID, now.Add(-24*time.Hour), "DONE")

	res, err := e.transfer.Execute(ctx, TransferClientInput{ClientID: c.ID, NewAssigneeID: e.other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MovedOpenAppointments)
	assert.Equal(t, e.other.ID, *res.Client.AssignedTo)

	var movedAp, keptAp models.Appointment
	require.NoError(t, e.db.First(&movedAp, "id = ?", open.ID).Error)
	assert.Equal(t, e.other.ID, movedAp.AssignedTo)
	require.NoError(t, e.db.First(&keptAp, "id = ?", done.ID).Error)
	assert.Equal(t, e.owner.ID, keptAp.AssignedTo)

	var stored models.Client
	require.NoError(t, e.db.First(&stored, "id = ?", c.ID).Error)
	assert.Equal(t, e.other.ID, *stored.AssignedTo)
}

func TestTransferRejections(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)

	_, err := e.transfer.Execute(ctx, TransferClientInput{ClientID: c.ID, NewAssigneeID: e.owner.ID})
	assert.True(t, httperr.IsBusiness(err, "same_assignee"))

	_, err = e.transfer.Execute(ctx, TransferClientInput{ClientID: c.ID, NewAssigneeID: "ghost"})
	assert.EqualError(t, err, "User not found")

	_, err = e.transfer.Execute(ctx, TransferClientInput{ClientID: "missing", NewAssigneeID: e.other.ID})
	assert.EqualError(t, err, "Client not found")

	_, err = e.deactivate.Execute(ctx, c.ID, "")
	require.NoError(t, err)
	_, err = e.transfer.Execute(ctx, TransferClientInput{ClientID: c.ID, NewAssigneeID: e.other.ID})
	assert.True(t, httperr.IsBusiness(err, "client_deactivated"))
}

// ======================================================
// history
// ======================================================

func TestHistoryNewestFirstAndSurvivesSoftDelete(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		ap := testutil.CreateAppointment(t, e.db, c.ID, e.owner.ID, base.AddDate(0, 0, i), "DONE")
		in := &models.Interaction{
			AppointmentID: ap.ID, ClientID: c.ID, UserID: e.owner.ID,
			StartedAt: base.AddDate(0, 0, i), EndedAt: base.AddDate(0, 0, i).Add(time.Hour),
			Summary: "s", Outcome: "o",
		}
		require.NoError(t, e.db.Create(in).Error)
		ids = append(ids, in.ID)
	}

	_, err := e.deactivate.Execute(ctx, c.ID, "")
	require.NoError(t, err)

	page, err := e.history.Execute(ctx, ClientHistoryInput{ClientID: c.ID, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, ids[1], page.Items[1].ID)

	_, err = e.history.Execute(ctx, ClientHistoryInput{ClientID: "missing"})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestHistorySnapshotIgnoresLaterFieldAndTagChanges(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	field := testutil.CreateField(t, e.db, models.ClientField{Name: "Plano", Type: models.FieldTypeText, Active: true})
	color := "#00ff00"
	tag := testutil.CreateTag(t, e.db, "Lead", &color, e.owner.ID)

	c := testutil.CreateClient(t, e.db, "+5511999998888", &e.owner.ID)
	require.NoError(t, e.db.Create(&models.ClientFieldValue{ClientID: c.ID, FieldID: field.ID, Value: "Gold"}).Error)
	require.NoError(t, e.db.Create(&models.ClientTag{ClientID: c.ID, TagID: tag.ID}).Error)
	ap := testutil.CreateAppointment(t, e.db, c.ID, e.owner.ID, time.Now().UTC().Add(time.Hour), "OPEN")

	finalize := ucAppointment.NewFinalizeAppointment(infraRepo.NewAppointmentGormRepository(e.db), nil)
	_, err := finalize.Execute(ctx, ucAppointment.FinalizeAppointmentInput{
		AppointmentID:       ap.ID,
		UserID:              e.owner.ID,
		StartedAt:           time.Now().UTC(),
		Summary:             "S",
		Outcome:             "O",
		NextAppointmentDate: time.Now().UTC().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// mutate the sources after the fact
	require.NoError(t, e.db.Model(field).Updates(map[string]any{"active": false, "name": "Plano (old)"}).Error)
	tagRepo := infraRepo.NewTagGormRepository(e.db)
	require.NoError(t, tagRepo.Delete(ctx, tag.ID))

	page, err := e.history.Execute(ctx, ClientHistoryInput{ClientID: c.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	snap := page.Items[0].Snapshot.Data()
	require.Len(t, snap.FieldValues, 1)
	assert.Equal(t, "Plano", snap.FieldValues[0].FieldName)
	assert.Equal(t, "Gold", snap.FieldValues[0].Value)
	require.Len(t, snap.Tags, 1)
	assert.Equal(t, "Lead", snap.Tags[0].Name)
	assert.Equal(t, "#00ff00", *snap.Tags[0].Color)

	assert.Zero(t, e.count(t, &models.ClientTag{}))
}
