package domain

import (
	"math"
	"strings"
	"time"
)

// approachInfo is the metadata taken from the selected close approach.
type approachInfo struct {
	date        *string
	velocityKmS *float64
	distanceKm  *float64
	primary     *string
}

// SimulateFromRecord simulates the impact of a catalog record using today's
// date from the package clock for approach selection.
func SimulateFromRecord(neo NEO) ImpactResult {
	return simulateRecordAt(neo, clock.Now())
}

// ImpactorFromRecord derives engine inputs from a catalog record, applying
// the default velocity and angle where the record lacks data.
func ImpactorFromRecord(neo NEO, today time.Time) ImpactorSpec {
	spec, _, _ := impactorFromRecord(neo, today)
	return spec
}

func simulateRecordAt(neo NEO, today time.Time) ImpactResult {
	spec, comp, info := impactorFromRecord(neo, today)

	result := Simulate(spec)
	result.DiameterMinM = neo.EstimatedDiameter.Meters.Min
	result.DiameterMaxM = neo.EstimatedDiameter.Meters.Max
	result.Composition = comp.Label
	result.DensityKgM3 = spec.DensityKgM3
	result.ImpactVelocityKmS = spec.VelocityKmS
	result.ImpactAngleDeg = spec.AngleDeg
	result.ApproachDate = info.date
	result.ApproachVelocityKmS = info.velocityKmS
	result.ApproachDistanceKm = info.distanceKm
	result.ApproachPrimary = info.primary
	return result
}

func impactorFromRecord(neo NEO, today time.Time) (ImpactorSpec, CompositionEstimate, approachInfo) {
	comp := EstimateComposition(neo.OrbitalData)

	var info approachInfo
	velocity := DefaultVelocityKmS
	if a, ok := SelectApproach(neo.CloseApproachData, today); ok {
		info = approachInfoFrom(a)
		if info.velocityKmS != nil && *info.velocityKmS > 0 {
			velocity = *info.velocityKmS
		}
	}

	return ImpactorSpec{
		DensityKgM3: comp.DensityKgM3,
		DiameterM:   AverageDiameter(neo.EstimatedDiameter.Meters),
		VelocityKmS: velocity,
		AngleDeg:    DefaultImpactAngleDeg,
	}, comp, info
}

// AverageDiameter returns the mean of the range when both bounds are present
// and nonzero, otherwise the larger bound.
func AverageDiameter(r DiameterRange) float64 {
	var lo, hi float64
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	if lo != 0 && hi != 0 {
		return math.Max(0, (lo+hi)/2)
	}
	return math.Max(0, math.Max(lo, hi))
}

func approachInfoFrom(a CloseApproach) approachInfo {
	info := approachInfo{
		velocityKmS: a.RelativeVelocity.KilometersPerSecond.floatPtr(),
		distanceKm:  a.MissDistance.Kilometers.floatPtr(),
	}
	if date := firstNonEmpty(a.CloseApproachDateFull, a.CloseApproachDate); date != "" {
		info.date = &date
	}
	if body := strings.TrimSpace(a.OrbitingBody); body != "" {
		info.primary = &body
	}
	return info
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
