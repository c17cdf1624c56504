package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/client-followup/internal/config"
	"github.com/BruksfildServices01/client-followup/internal/db"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/testutil"
)

func TestNewDBReportsConnectionFailure(t *testing.T) {
	gdb, err := db.NewDB(&config.Config{
		DBUrl: "host=127.0.0.1 port=1 user=crm dbname=crm sslmode=disable connect_timeout=1",
	})
	assert.Error(t, err)
	assert.Nil(t, gdb)
}

func TestMigrateIsRepeatable(t *testing.T) {
	gdb := testutil.NewDB(t)

	require.NoError(t, db.Migrate(gdb))

	u := testutil.CreateUser(t, gdb, "Ana", "ana@example.com")
	c := testutil.CreateClient(t, gdb, "+5511999998888", &u.ID)
	at := time.Now().Add(time.Hour)
	testutil.CreateAppointment(t, gdb, c.ID, u.ID, at, "OPEN")
	testutil.CreateAppointment(t, gdb, c.ID, u.ID, at, "DONE")

	err := gdb.Create(&models.Appointment{
		ClientID:    c.ID,
		AssignedTo:  u.ID,
		CreatedBy:   u.ID,
		ScheduledAt: at,
		Status:      "OPEN",
	}).Error
	assert.True(t, httperr.IsExclusionConflict(err), "second OPEN appointment: %v", err)
}
