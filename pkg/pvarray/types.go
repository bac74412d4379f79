// Package pvarray models photovoltaic modules and lays them out in a grid
// inside a mounting-area boundary.
package pvarray

import (
	"fmt"

	"github.com/RubinhoSilva/bess-pro-sub010/pkg/geom"
)

// Orientation selects which way the module footprint faces within a row.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// ModuleSpec is the physical and electrical specification of one panel
// model. Dimensions are in meters, depth being the frame thickness.
type ModuleSpec struct {
	WidthM             float64 `yaml:"width_m" json:"width_m"`
	HeightM            float64 `yaml:"height_m" json:"height_m"`
	DepthM             float64 `yaml:"depth_m" json:"depth_m"`
	RatedPowerWatts    float64 `yaml:"rated_power_watts" json:"rated_power_watts"`
	RatedEfficiencyPct float64 `yaml:"rated_efficiency_pct" json:"rated_efficiency_pct"`
}

// GridConfig describes the requested rows/columns arrangement.
type GridConfig struct {
	Rows           int         `yaml:"rows" json:"rows"`
	Columns        int         `yaml:"columns" json:"columns"`
	RowSpacingM    float64     `yaml:"row_spacing_m" json:"row_spacing_m"`
	ModuleSpacingM float64     `yaml:"module_spacing_m" json:"module_spacing_m"`
	Orientation    Orientation `yaml:"orientation" json:"orientation"`
}

// InstallationParams carry the mounting geometry shared by every module in
// the grid.
type InstallationParams struct {
	TiltDeg        float64 `yaml:"tilt_deg" json:"tilt_deg"`
	AzimuthDeg     float64 `yaml:"azimuth_deg" json:"azimuth_deg"`
	MinRowSpacingM float64 `yaml:"min_row_spacing_m" json:"min_row_spacing_m"`
	MountHeightM   float64 `yaml:"mount_height_m" json:"mount_height_m"`
}

// Rotation is the module attitude in radians. Roll is always zero for
// fixed-rack installations.
type Rotation struct {
	TiltRad    float64 `json:"tilt_rad"`
	AzimuthRad float64 `json:"azimuth_rad"`
	RollRad    float64 `json:"roll_rad"`
}

// Size is the oriented footprint of a placed module in meters.
type Size struct {
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
	DepthM  float64 `json:"depth_m"`
}

// Module is one placed panel. Position is the footprint center. Instances
// are created by Generate and never mutated afterward; recomputation means
// regenerating the whole list.
type Module struct {
	ID       string      `json:"id"`
	Position geom.Point3 `json:"position"`
	Rotation Rotation    `json:"rotation"`
	Size     Size        `json:"size"`

	RatedPowerWatts        float64 `json:"rated_power_watts"`
	EffectiveEfficiencyPct float64 `json:"effective_efficiency_pct"`
	ShadingFactor          float64 `json:"shading_factor"`
	Obstructed             bool    `json:"obstructed"`
}

func (s ModuleSpec) validate() error {
	if s.WidthM <= 0 || s.HeightM <= 0 || s.DepthM <= 0 {
		return fmt.Errorf("module dimensions must be positive, got %gx%gx%g", s.WidthM, s.HeightM, s.DepthM)
	}
	return nil
}

func (c GridConfig) validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("grid must have positive rows and columns, got %dx%d", c.Rows, c.Columns)
	}
	return nil
}
