package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NEO is a near-Earth object record as served by NeoWs. Only the fields the
// simulation reads, plus the identifying fields echoed back to callers, are
// modeled.
type NEO struct {
	ID                     string            `json:"id"`
	NEOReferenceID         string            `json:"neo_reference_id,omitempty"`
	Name                   string            `json:"name"`
	NASAJPLURL             string            `json:"nasa_jpl_url,omitempty"`
	AbsoluteMagnitudeH     float64           `json:"absolute_magnitude_h,omitempty"`
	EstimatedDiameter      EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardous bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []CloseApproach   `json:"close_approach_data,omitempty"`
	OrbitalData            *OrbitalData      `json:"orbital_data,omitempty"`
}

// EstimatedDiameter holds the diameter range. NeoWs also reports kilometers,
// miles and feet; the simulation works from meters only.
type EstimatedDiameter struct {
	Meters DiameterRange `json:"meters"`
}

// DiameterRange is the min/max estimate derived from absolute magnitude.
// Either bound may be absent in partial records.
type DiameterRange struct {
	Min *float64 `json:"estimated_diameter_min,omitempty"`
	Max *float64 `json:"estimated_diameter_max,omitempty"`
}

// OrbitalData carries the composition hints used by EstimateComposition.
type OrbitalData struct {
	OrbitID      string  `json:"orbit_id,omitempty"`
	SpectralType string  `json:"spectral_type,omitempty"`
	Albedo       Numeric `json:"albedo,omitempty"`
}

// CloseApproach is one recorded or predicted pass near a body.
type CloseApproach struct {
	CloseApproachDate     string           `json:"close_approach_date"`
	CloseApproachDateFull string           `json:"close_approach_date_full,omitempty"`
	RelativeVelocity      RelativeVelocity `json:"relative_velocity"`
	MissDistance          MissDistance     `json:"miss_distance"`
	OrbitingBody          string           `json:"orbiting_body,omitempty"`
}

type RelativeVelocity struct {
	KilometersPerSecond Numeric `json:"kilometers_per_second,omitempty"`
	KilometersPerHour   Numeric `json:"kilometers_per_hour,omitempty"`
}

type MissDistance struct {
	Astronomical Numeric `json:"astronomical,omitempty"`
	Lunar        Numeric `json:"lunar,omitempty"`
	Kilometers   Numeric `json:"kilometers,omitempty"`
}

// Numeric is a measurement NeoWs may encode either as a JSON number or as a
// decimal string. The textual form is kept as received.
type Numeric string

// UnmarshalJSON accepts a quoted string, a bare number, or null.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*n = Numeric(str)
		return nil
	}
	*n = Numeric(s)
	return nil
}

// MarshalJSON emits the value as a string, matching NeoWs, or null when empty.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(n))
}

// Float parses the value. It reports false when the value is empty, not a
// number, or not finite.
func (n Numeric) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// floatPtr returns a pointer to the parsed value, or nil when unparsable.
func (n Numeric) floatPtr() *float64 {
	v, ok := n.Float()
	if !ok {
		return nil
	}
	return &v
}
