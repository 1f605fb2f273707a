package domain

import "strings"

// Bulk densities (kg/m^3) for the three taxonomic classes.
const (
	DensityCarbonaceous = 1500.0
	DensityRocky        = 3000.0
	DensityMetallic     = 5300.0
)

// Albedo thresholds used when no spectral type is known.
const (
	lowAlbedo  = 0.1
	highAlbedo = 0.4
)

// CompositionEstimate is the inferred material class of an impactor.
type CompositionEstimate struct {
	Label       string  `json:"label"`
	DensityKgM3 float64 `json:"density_kg_m3"`
}

// EstimateComposition infers composition from the spectral type, falling
// back to albedo and finally to a rocky default. It never fails.
func EstimateComposition(orbital *OrbitalData) CompositionEstimate {
	var spectral string
	var albedo Numeric
	if orbital != nil {
		spectral = strings.ToUpper(strings.TrimSpace(orbital.SpectralType))
		albedo = orbital.Albedo
	}

	switch {
	case strings.HasPrefix(spectral, "C"):
		return CompositionEstimate{Label: "carbonaceous (C-type)", DensityKgM3: DensityCarbonaceous}
	case strings.HasPrefix(spectral, "S"):
		return CompositionEstimate{Label: "rocky (S-type)", DensityKgM3: DensityRocky}
	case strings.HasPrefix(spectral, "M"):
		return CompositionEstimate{Label: "metallic (M-type)", DensityKgM3: DensityMetallic}
	}

	if a, ok := albedo.Float(); ok {
		switch {
		case a < lowAlbedo:
			return CompositionEstimate{Label: "carbonaceous (C-type, assumed from albedo)", DensityKgM3: DensityCarbonaceous}
		case a > highAlbedo:
			return CompositionEstimate{Label: "metallic (M-type, assumed from albedo)", DensityKgM3: DensityMetallic}
		default:
			return CompositionEstimate{Label: "rocky (S-type, assumed from albedo)", DensityKgM3: DensityRocky}
		}
	}

	return CompositionEstimate{Label: "rocky (S-type, assumed)", DensityKgM3: DensityRocky}
}
