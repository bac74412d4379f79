package solar

import (
	"math"
	"testing"
	"time"
)

func TestCalculateVisibility(t *testing.T) {
	tests := []struct {
		name    string
		time    time.Time
		lat     float64
		lon     float64
		visible bool
	}{
		{
			name:    "equator midnight UTC",
			time:    time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			lat:     0, lon: 0,
			visible: false,
		},
		{
			name:    "equator noon UTC",
			time:    time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC),
			lat:     0, lon: 0,
			visible: true,
		},
		{
			name:    "polar night Tromso",
			time:    time.Date(2025, 12, 21, 11, 0, 0, 0, time.UTC),
			lat:     69.6, lon: 18.9,
			visible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Calculate(tt.time, tt.lat, tt.lon)
			if pos.Visible != tt.visible {
				t.Errorf("Visible = %v (elevation %.2f), want %v", pos.Visible, pos.ElevationDeg, tt.visible)
			}
			if pos.Visible != (pos.ElevationDeg > 0) {
				t.Errorf("Visible=%v inconsistent with elevation %.2f", pos.Visible, pos.ElevationDeg)
			}
			if pos.IntensityFactor < 0 || pos.IntensityFactor > 1 {
				t.Errorf("IntensityFactor = %g out of [0,1]", pos.IntensityFactor)
			}
			if !pos.Visible && pos.IntensityFactor != 0 {
				t.Errorf("IntensityFactor = %g with sun below horizon, want 0", pos.IntensityFactor)
			}
		})
	}
}

// Elevation at the computed solar noon must be the day's maximum, within
// tolerance, compared against an hourly sweep.
func TestSolarNoonIsDailyMaximum(t *testing.T) {
	locations := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"Boulder", 40.0, -105.0},
		{"Sao Paulo", -23.5505, -46.6333},
		{"London", 51.5, -0.1},
	}
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	for _, loc := range locations {
		t.Run(loc.name, func(t *testing.T) {
			ref := Calculate(date.Add(12*time.Hour), loc.lat, loc.lon)
			noonElev := Calculate(ref.SolarNoon, loc.lat, loc.lon).ElevationDeg

			for hour := 0; hour < 24; hour++ {
				pos := Calculate(date.Add(time.Duration(hour)*time.Hour), loc.lat, loc.lon)
				if pos.ElevationDeg > noonElev+0.2 {
					t.Errorf("hour %02d elevation %.3f exceeds solar noon elevation %.3f",
						hour, pos.ElevationDeg, noonElev)
				}
			}
		})
	}
}

func TestSaoPauloWinterSolstice(t *testing.T) {
	// Winter solstice at -23.55 latitude: max elevation near
	// 90 - (23.55 + 23.44) = 43 degrees, sun due north at noon.
	pos := Calculate(time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC), -23.5505, -46.6333)
	noon := Calculate(pos.SolarNoon, -23.5505, -46.6333)

	if noon.ElevationDeg < 40 || noon.ElevationDeg > 47 {
		t.Errorf("solar noon elevation = %.2f, want ~43", noon.ElevationDeg)
	}
	if !(noon.AzimuthDeg < 30 || noon.AzimuthDeg > 330) {
		t.Errorf("solar noon azimuth = %.2f, want near north (0/360)", noon.AzimuthDeg)
	}
	if !pos.Sunrise.Before(pos.SolarNoon) || !pos.SolarNoon.Before(pos.Sunset) {
		t.Errorf("day bounds out of order: sunrise=%v noon=%v sunset=%v",
			pos.Sunrise, pos.SolarNoon, pos.Sunset)
	}

	// Shortest day of the year: roughly 10.5 hours at this latitude.
	dayLen := pos.Sunset.Sub(pos.Sunrise)
	if dayLen < 9*time.Hour || dayLen > 12*time.Hour {
		t.Errorf("day length = %v, want ~10.5h", dayLen)
	}
}

func TestPolarDayBounds(t *testing.T) {
	// Tromso in June: the sun never sets, bounds expand to the whole day.
	day := Calculate(time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC), 69.6, 18.9)
	if got := day.Sunset.Sub(day.Sunrise); got < 22*time.Hour {
		t.Errorf("polar day span = %v, want >= 22h", got)
	}

	// Tromso in December: polar night collapses bounds onto solar noon.
	night := Calculate(time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC), 69.6, 18.9)
	if !night.Sunrise.Equal(night.Sunset) || !night.Sunrise.Equal(night.SolarNoon) {
		t.Errorf("polar night bounds should collapse: sunrise=%v sunset=%v noon=%v",
			night.Sunrise, night.Sunset, night.SolarNoon)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		x    float64
		y    float64
		z    float64
	}{
		{
			name: "sun due north at 45 elevation",
			pos:  Position{AzimuthDeg: 0, ElevationDeg: 45},
			x:    0, y: math.Sqrt2 / 2, z: math.Sqrt2 / 2,
		},
		{
			name: "sun due east at horizon",
			pos:  Position{AzimuthDeg: 90, ElevationDeg: 0},
			x:    1, y: 0, z: 0,
		},
		{
			name: "sun overhead",
			pos:  Position{AzimuthDeg: 180, ElevationDeg: 90},
			x:    0, y: 1, z: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.pos.Direction()
			if math.Abs(d.X-tt.x) > 1e-9 || math.Abs(d.Y-tt.y) > 1e-9 || math.Abs(d.Z-tt.z) > 1e-9 {
				t.Errorf("Direction() = (%g, %g, %g), want (%g, %g, %g)", d.X, d.Y, d.Z, tt.x, tt.y, tt.z)
			}
			norm := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
			if math.Abs(norm-1) > 1e-9 {
				t.Errorf("Direction() norm = %g, want 1", norm)
			}
		})
	}
}

func TestCalculateIsPure(t *testing.T) {
	ts := time.Date(2025, 8, 25, 14, 30, 0, 0, time.UTC)
	a := Calculate(ts, -23.5505, -46.6333)
	b := Calculate(ts, -23.5505, -46.6333)
	if a != b {
		t.Errorf("identical inputs produced different positions:\n%+v\n%+v", a, b)
	}
}
