package domain

import "math"

const (
	// targetDensity is the density of continental crust (kg/m^3).
	targetDensity = 2700.0

	// craterScale and the exponents below form the Schmidt-Holsapple style
	// transient crater relation.
	craterScale           = 1.161
	craterDensityExponent = 0.333
	craterSizeExponent    = 0.78
	craterSpeedExponent   = 0.44

	// minVerticalFraction floors sin(angle) for grazing impacts.
	minVerticalFraction = 0.1

	depthToDiameter = 0.2
)

// CraterResult holds crater dimensions in kilometers.
type CraterResult struct {
	DiameterKm float64 `json:"diameter_km"`
	RadiusKm   float64 `json:"radius_km"`
	DepthKm    float64 `json:"depth_km"`
}

// CraterSize estimates the crater left by a spherical impactor of diameterKm
// kilometers and the given density (kg/m^3), striking at velocityKmS km/s and
// angleDeg degrees above the horizontal. A non-positive diameter yields a
// zero crater.
func CraterSize(diameterKm, density, velocityKmS, angleDeg float64) CraterResult {
	if diameterKm <= 0 {
		return CraterResult{}
	}

	angle := angleDeg * math.Pi / 180
	vertical := velocityKmS * math.Max(math.Sin(angle), minVerticalFraction)

	d := craterScale *
		math.Pow(density/targetDensity, craterDensityExponent) *
		math.Pow(diameterKm, craterSizeExponent) *
		math.Pow(vertical, craterSpeedExponent)
	if math.IsNaN(d) || d < 0 {
		return CraterResult{}
	}

	return CraterResult{
		DiameterKm: d,
		RadiusKm:   d / 2,
		DepthKm:    d * depthToDiameter,
	}
}
