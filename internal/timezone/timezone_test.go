package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2026-03-10", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = DayRange("10/03/2026", "UTC")
	assert.Error(t, err)
}

func TestNowIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Now().Location())
}
