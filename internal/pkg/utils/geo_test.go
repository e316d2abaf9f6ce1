package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDistance_Boundaries(t *testing.T) {
	cases := []struct {
		miles float64
		want  ComplianceTier
	}{
		{0, TierCompliant},
		{0.25, TierCompliant},
		{0.5, TierCompliant},
		{0.50001, TierMinorViolation},
		{1.0, TierMinorViolation},
		{1.999, TierMinorViolation},
		{2.0, TierMajorViolation},
		{3.5, TierMajorViolation},
		{4.999, TierMajorViolation},
		{5.0, TierFraudRisk},
		{12.7, TierFraudRisk},
	}

	for _, c := range cases {
		got := ClassifyDistance(c.miles)
		assert.Equal(t, c.want, got, "ClassifyDistance(%v)", c.miles)
	}
}

func TestDistanceMiles_KnownPoints(t *testing.T) {
	// Empire State Building to Statue of Liberty, roughly 5.2 miles
	d := DistanceMiles(40.748440, -73.985664, 40.689247, -74.044502)
	assert.InDelta(t, 5.16, d, 0.1)

	// Same point is zero
	assert.Equal(t, 0.0, DistanceMiles(33.4484, -112.0740, 33.4484, -112.0740))
}

func TestDistanceMiles_ShortRange(t *testing.T) {
	// Two points ~0.14 miles apart in downtown Phoenix
	d := DistanceMiles(33.4484, -112.0740, 33.4504, -112.0740)
	assert.InDelta(t, 0.138, d, 0.01)
	assert.Equal(t, TierCompliant, ClassifyDistance(d))
}

func TestRoundMiles(t *testing.T) {
	assert.Equal(t, 0.5, RoundMiles(0.50001))
	assert.Equal(t, 2.35, RoundMiles(2.34501))
	assert.Equal(t, 2.34, RoundMiles(2.344999))
	assert.Equal(t, 0.0, RoundMiles(0))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(33.4484, -112.0740))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.1, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
}
