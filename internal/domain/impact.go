package domain

import "math"

const (
	// JoulesPerMegaton is the energy of one megaton of TNT.
	JoulesPerMegaton = 4.184e15

	// DefaultVelocityKmS is used when a record has no usable approach velocity.
	DefaultVelocityKmS = 20.0

	// DefaultImpactAngleDeg is the impact angle assumed for catalog records.
	DefaultImpactAngleDeg = 45.0

	// blastScaleKm gives the 5 psi overpressure radius for a 1 Mt yield.
	blastScaleKm = 0.32

	seismicSlope     = 0.67
	seismicIntercept = 5.87
)

// ImpactorSpec is the input to the impact engine.
type ImpactorSpec struct {
	DensityKgM3 float64 `json:"density"`
	DiameterM   float64 `json:"diameter_m"`
	VelocityKmS float64 `json:"velocity_km_s"`
	AngleDeg    float64 `json:"angle_deg"`
}

// ImpactResult summarizes a simulated impact. Approach and diameter range
// fields are set only for catalog-derived results.
type ImpactResult struct {
	DiameterAvgM float64  `json:"diameter_avg_m"`
	DiameterMinM *float64 `json:"diameter_min_m,omitempty"`
	DiameterMaxM *float64 `json:"diameter_max_m,omitempty"`
	Composition  string   `json:"composition,omitempty"`
	DensityKgM3  float64  `json:"density_kg_m3,omitempty"`
	MassKg       float64  `json:"mass_kg"`

	ApproachDate        *string  `json:"approach_date,omitempty"`
	ApproachVelocityKmS *float64 `json:"approach_velocity_km_s,omitempty"`
	ApproachDistanceKm  *float64 `json:"approach_distance_km,omitempty"`
	ApproachPrimary     *string  `json:"approach_primary,omitempty"`

	ImpactVelocityKmS float64 `json:"impact_velocity_km_s,omitempty"`
	ImpactAngleDeg    float64 `json:"impact_angle_deg,omitempty"`

	KineticEnergyJ   float64      `json:"kinetic_energy_j"`
	KineticEnergyMt  float64      `json:"kinetic_energy_mt"`
	Crater           CraterResult `json:"crater"`
	BlastRadiusKm    float64      `json:"blast_radius_km"`
	SeismicMagnitude float64      `json:"seismic_magnitude"`
}

// Simulate runs the impact engine. A non-positive density, diameter or
// velocity describes no impact and yields a zero result.
func Simulate(spec ImpactorSpec) ImpactResult {
	if spec.DensityKgM3 <= 0 || spec.DiameterM <= 0 || spec.VelocityKmS <= 0 {
		return ImpactResult{DiameterAvgM: math.Max(0, spec.DiameterM)}
	}

	mass := SphereMass(spec.DiameterM, spec.DensityKgM3)
	energy := KineticEnergy(mass, spec.VelocityKmS)
	megatons := energy / JoulesPerMegaton

	return ImpactResult{
		DiameterAvgM:      spec.DiameterM,
		DensityKgM3:       spec.DensityKgM3,
		MassKg:            mass,
		ImpactVelocityKmS: spec.VelocityKmS,
		ImpactAngleDeg:    spec.AngleDeg,
		KineticEnergyJ:    energy,
		KineticEnergyMt:   megatons,
		Crater:            CraterSize(spec.DiameterM/1000, spec.DensityKgM3, spec.VelocityKmS, spec.AngleDeg),
		BlastRadiusKm:     BlastRadius(megatons),
		SeismicMagnitude:  SeismicMagnitude(energy),
	}
}

// Finite reports whether every numeric field of r is a finite number.
// Extreme but finite inputs can overflow the engine to ±Inf, which has no
// JSON encoding.
func (r ImpactResult) Finite() bool {
	values := []float64{
		r.DiameterAvgM, r.DensityKgM3, r.MassKg,
		r.ImpactVelocityKmS, r.ImpactAngleDeg,
		r.KineticEnergyJ, r.KineticEnergyMt,
		r.Crater.DiameterKm, r.Crater.RadiusKm, r.Crater.DepthKm,
		r.BlastRadiusKm, r.SeismicMagnitude,
	}
	for _, p := range []*float64{r.DiameterMinM, r.DiameterMaxM, r.ApproachVelocityKmS, r.ApproachDistanceKm} {
		if p != nil {
			values = append(values, *p)
		}
	}
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// SimulateCustom simulates an arbitrary spherical impactor.
func SimulateCustom(density, diameterM, velocityKmS, angleDeg float64) ImpactResult {
	return Simulate(ImpactorSpec{
		DensityKgM3: density,
		DiameterM:   diameterM,
		VelocityKmS: velocityKmS,
		AngleDeg:    angleDeg,
	})
}

// SphereMass returns the mass (kg) of a sphere of diameterM meters.
func SphereMass(diameterM, density float64) float64 {
	r := diameterM / 2
	return 4.0 / 3.0 * math.Pi * r * r * r * density
}

// KineticEnergy returns joules for a mass (kg) moving at velocityKmS.
func KineticEnergy(massKg, velocityKmS float64) float64 {
	v := velocityKmS * 1000
	return 0.5 * massKg * v * v
}

// BlastRadius returns the 5 psi overpressure radius (km) for a yield in megatons.
func BlastRadius(megatons float64) float64 {
	if megatons <= 0 {
		return 0
	}
	return blastScaleKm * math.Cbrt(megatons)
}

// SeismicMagnitude converts impact energy (J) to a moment-magnitude proxy.
func SeismicMagnitude(energyJ float64) float64 {
	if energyJ <= 0 {
		return 0
	}
	return math.Max(0, seismicSlope*math.Log10(energyJ)-seismicIntercept)
}
