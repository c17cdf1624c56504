// Package testutil provides an in-memory store and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/client-followup/internal/db"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

// NewDB opens a migrated in-memory sqlite database. It is pinned to a
// single connection because every :memory: connection is its own database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// ======================================================
// Fixtures
// ======================================================

func CreateUser(t *testing.T, gdb *gorm.DB, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func CreateField(t *testing.T, gdb *gorm.DB, f models.ClientField) *models.ClientField {
	t.Helper()
	require.NoError(t, gdb.Create(&f).Error)
	return &f
}

// CreateClient copies assignedTo so later updates to the client never write
// through to the caller's variable.
func CreateClient(t *testing.T, gdb *gorm.DB, whatsapp string, assignedTo *string) *models.Client {
	t.Helper()
	c := &models.Client{Whatsapp: whatsapp}
	if assignedTo != nil {
		c.AssignedTo = StrPtr(*assignedTo)
	}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func CreateAppointment(
	t *testing.T,
	gdb *gorm.DB,
	clientID, userID string,
	at time.Time,
	status string,
) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		ClientID:    clientID,
		AssignedTo:  userID,
		CreatedBy:   userID,
		ScheduledAt: at.UTC(),
		Status:      status,
	}
	require.NoError(t, gdb.Create(ap).Error)
	return ap
}

func CreateTag(t *testing.T, gdb *gorm.DB, name string, color *string, createdBy string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, CreatedBy: createdBy}
	require.NoError(t, gdb.Create(tag).Error)
	return tag
}

func StrPtr(s string) *string {
	return &s
}
