// Package domain models near-Earth objects and the physics of a hypothetical
// impact with Earth.
//
// # Data Source
//
// Catalog records come from NASA's Near Earth Object Web Service (NeoWs),
// https://api.nasa.gov/. A record carries an estimated diameter range,
// optional orbital metadata (spectral type, albedo) and a list of close
// approaches. NeoWs encodes most measurements inside close approaches as
// decimal strings; [Numeric] decodes either form.
//
// # Simulation Paths
//
// Two entry points share one engine:
//
//	SimulateFromRecord(neo)  catalog record -> ImpactorSpec -> Simulate
//	SimulateCustom(...)      caller parameters -> ImpactorSpec -> Simulate
//
// # Physics
//
// The impactor is a sphere. Energy, crater, blast and seismic values are
// closed-form empirical scaling relations:
//
//	mass        = 4/3 pi r^3 * density
//	energy      = 1/2 m v^2                       (J)
//	megatons    = energy / 4.184e15
//	crater      = 1.161 (rho/2700)^0.333 d^0.78 (v sin a)^0.44   (km)
//	blast       = 0.32 Mt^(1/3)                   (km, 5 psi contour)
//	magnitude   = 0.67 log10(E) - 5.87            (floored at 0)
//
// The vertical velocity component uses sin(angle) floored at 0.1 so grazing
// impacts still produce a crater. 2700 kg/m^3 is the target density of
// continental crust.
//
// # Defaults
//
// Records with missing data degrade to documented defaults rather than
// errors: rocky composition (3000 kg/m^3), an impact velocity of
// [DefaultVelocityKmS] and an impact angle of [DefaultImpactAngleDeg].
// The result keeps the parsed approach velocity separate from the velocity
// actually used so callers can tell when a default was substituted.
//
// # Approach Selection
//
// The next close approach on or after today is preferred; otherwise the most
// recent past approach. "Today" comes from the package clock, which tests and
// tools freeze via [SetClock].
package domain
