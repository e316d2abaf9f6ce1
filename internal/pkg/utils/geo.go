package utils

import "math"

// ComplianceTier classifies how far from the job site a clock event happened.
type ComplianceTier string

const (
	TierCompliant      ComplianceTier = "compliant"
	TierMinorViolation ComplianceTier = "minor_violation"
	TierMajorViolation ComplianceTier = "major_violation"
	TierFraudRisk      ComplianceTier = "fraud_risk"
)

// DistanceMiles computes the great-circle distance between two coordinates
// in statute miles using the haversine formula on a spherical Earth.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMiles = 3959 // mean Earth radius in miles

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// RoundMiles rounds a distance to two decimals, the precision persisted on
// clock sessions.
func RoundMiles(miles float64) float64 {
	return math.Round(miles*100) / 100
}

// ClassifyDistance maps a raw (unrounded) distance in miles to a compliance
// tier. Boundaries: at most 0.5 is compliant, below 2.0 a minor violation,
// below 5.0 a major violation, 5.0 and beyond a fraud risk.
func ClassifyDistance(miles float64) ComplianceTier {
	switch {
	case miles <= 0.5:
		return TierCompliant
	case miles < 2.0:
		return TierMinorViolation
	case miles < 5.0:
		return TierMajorViolation
	default:
		return TierFraudRisk
	}
}

// ValidCoordinates reports whether a latitude/longitude pair is usable.
// Out-of-range values are treated as "no GPS data" rather than an error.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
