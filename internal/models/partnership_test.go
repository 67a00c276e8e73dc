package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierForRideCount(t *testing.T) {
	const silver, gold, platinum = 10, 25, 50

	tests := []struct {
		rides int
		want  PartnershipTier
	}{
		{0, TierBronze},
		{9, TierBronze},
		{10, TierSilver},
		{24, TierSilver},
		{25, TierGold},
		{49, TierGold},
		{50, TierPlatinum},
		{200, TierPlatinum},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForRideCount(tt.rides, silver, gold, platinum),
			"rides=%d", tt.rides)
	}
}

func TestPartnershipTierIsValid(t *testing.T) {
	assert.True(t, TierGold.IsValid())
	assert.False(t, PartnershipTier("diamond").IsValid())
}

func TestIsCurrentlyActive(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	active := &DriverHotelPartnership{IsActive: true, ValidUntil: now.AddDate(0, 6, 0)}
	assert.True(t, active.IsCurrentlyActive(now))

	expired := &DriverHotelPartnership{IsActive: true, ValidUntil: now.AddDate(0, -1, 0)}
	assert.False(t, expired.IsCurrentlyActive(now))

	deactivated := &DriverHotelPartnership{IsActive: false, ValidUntil: now.AddDate(1, 0, 0)}
	assert.False(t, deactivated.IsCurrentlyActive(now))
}
