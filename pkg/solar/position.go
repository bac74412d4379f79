// Package solar computes apparent sun positions and daylight bounds for a
// given instant and geographic location. The algorithm follows the NOAA
// low-accuracy solar equations (Julian centuries, solar declination,
// equation of time, hour angle) which are good to a fraction of a degree,
// more than enough for layout shading work.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"
)

// Position describes the sun as seen from a location at one instant.
// Azimuth is a compass heading (degrees, 0 = north, clockwise); elevation
// is degrees above the horizon, corrected for atmospheric refraction.
type Position struct {
	AzimuthDeg   float64   `json:"azimuth_deg"`
	ElevationDeg float64   `json:"elevation_deg"`
	Visible      bool      `json:"visible"`
	Sunrise      time.Time `json:"sunrise"`
	Sunset       time.Time `json:"sunset"`
	SolarNoon    time.Time `json:"solar_noon"`

	// IntensityFactor is a relative daylight weighting in [0,1]
	// (sin of elevation), not a physical irradiance.
	IntensityFactor float64 `json:"intensity_factor"`

	DeclinationDeg float64 `json:"declination_deg"`
	EqOfTimeMin    float64 `json:"eq_of_time_min"`
}

// Direction returns the unit vector pointing from the ground toward the
// sun in the engine frame (+X east, +Y up, +Z north).
func (p Position) Direction() r3.Vec {
	az := unit.AngleFromDeg(p.AzimuthDeg).Rad()
	el := unit.AngleFromDeg(p.ElevationDeg).Rad()
	cosEl := math.Cos(el)
	return r3.Vec{
		X: math.Sin(az) * cosEl,
		Y: math.Sin(el),
		Z: math.Cos(az) * cosEl,
	}
}

func fixAngle(a float64) float64 { return a - 360.0*math.Floor(a/360.0) }

// Calculate returns the sun position for the given time and location.
// The computation is pure: it never consults the wall clock, so repeated
// calls with the same arguments return the same result.
func Calculate(t time.Time, latitude, longitude float64) Position {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	T := (jd - 2451545.0) / 36525.0

	// Geometric mean longitude and anomaly of the sun, eccentricity of
	// Earth's orbit, equation of center (NOAA / Meeus ch. 25).
	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	mRad := unit.AngleFromDeg(M).Rad()
	C := math.Sin(mRad)*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(2*mRad)*(0.019993-T*0.000101) +
		math.Sin(3*mRad)*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(unit.AngleFromDeg(omega).Rad())

	// Mean obliquity of the ecliptic, then solar declination.
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	epsRad := unit.AngleFromDeg(eps0).Rad()
	declRad := math.Asin(math.Sin(epsRad) * math.Sin(unit.AngleFromDeg(lambda).Rad()))

	// Equation of time in minutes.
	l0Rad := unit.AngleFromDeg(L0).Rad()
	y := math.Tan(epsRad/2) * math.Tan(epsRad/2)
	eqTimeMin := unit.Angle(y*math.Sin(2*l0Rad)-
		2*e*math.Sin(mRad)+
		4*e*y*math.Sin(mRad)*math.Cos(2*l0Rad)-
		0.5*y*y*math.Sin(4*l0Rad)-
		1.25*e*e*math.Sin(2*mRad)).Deg() * 4

	// True solar time and hour angle.
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*longitude + eqTimeMin
	haDeg := tst/4 - 180
	haRad := unit.AngleFromDeg(haDeg).Rad()

	latRad := unit.AngleFromDeg(latitude).Rad()
	cosZen := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenRad := math.Acos(cosZen)

	// Refraction correction lifts the apparent horizon by ~34'.
	elevDeg := 90 - unit.Angle(zenRad).Deg() + 0.5667

	azDeg := 0.0
	sinZen := math.Sin(zenRad)
	if sinZen > 1e-9 {
		azCos := (math.Sin(declRad) - math.Sin(latRad)*cosZen) / (math.Cos(latRad) * sinZen)
		azCos = math.Max(-1, math.Min(1, azCos))
		azDeg = unit.Angle(math.Acos(azCos)).Deg()
		if haDeg > 0 {
			azDeg = 360 - azDeg
		}
	}

	sunrise, sunset, noon := dayBounds(t, latRad, declRad, longitude, eqTimeMin)

	return Position{
		AzimuthDeg:      azDeg,
		ElevationDeg:    elevDeg,
		Visible:         elevDeg > 0,
		Sunrise:         sunrise,
		Sunset:          sunset,
		SolarNoon:       noon,
		IntensityFactor: math.Max(0, math.Sin(unit.AngleFromDeg(elevDeg).Rad())),
		DeclinationDeg:  unit.Angle(declRad).Deg(),
		EqOfTimeMin:     eqTimeMin,
	}
}

// dayBounds derives sunrise, sunset and solar noon as UTC timestamps on the
// date of t. Polar night collapses sunrise and sunset onto solar noon; polar
// day expands them to cover the whole UTC day.
func dayBounds(t time.Time, latRad, declRad, longitude, eqTimeMin float64) (sunrise, sunset, noon time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	noonMin := 720.0 - 4.0*longitude - eqTimeMin
	noon = midnight.Add(time.Duration(noonMin * float64(time.Minute)))

	// Hour angle at which the sun crosses the horizon.
	cosH := -math.Tan(latRad) * math.Tan(declRad)
	switch {
	case cosH > 1:
		// Polar night: the sun never rises.
		return noon, noon, noon
	case cosH < -1:
		// Polar day: the sun never sets.
		return midnight, midnight.Add(23 * time.Hour), noon
	}

	haMin := unit.Angle(math.Acos(cosH)).Deg() * 4
	sunrise = midnight.Add(time.Duration((noonMin - haMin) * float64(time.Minute)))
	sunset = midnight.Add(time.Duration((noonMin + haMin) * float64(time.Minute)))
	return sunrise, sunset, noon
}
