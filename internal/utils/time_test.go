package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightsBetween(t *testing.T) {
	checkIn := time.Date(2026, 7, 10, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 13, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, NightsBetween(checkIn, checkOut), "time of day is ignored")
	assert.Equal(t, 0, NightsBetween(checkIn, checkIn))
	assert.Equal(t, 0, NightsBetween(checkOut, checkIn), "reversed dates clamp to zero")
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-07-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.July, date.Month())
	assert.Equal(t, 10, date.Day())

	_, err = ParseDate("10/07/2026")
	assert.Error(t, err)
}

func TestStartAndEndOfDay(t *testing.T) {
	moment := time.Date(2026, 7, 10, 16, 45, 12, 0, time.UTC)

	start := StartOfDay(moment)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 10, start.Day())

	end := EndOfDay(moment)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
}
