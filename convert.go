// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import (
	"fmt"
	"math"
)

// GridOpt contains options for the conversion between WGS84 and the National Grid
type GridOpt struct {
	Tolerance     float64  `yaml:"tolerance"`      // Latitude convergence threshold [rad]
	MaxIter       int      `yaml:"max_iter"`       // Maximum number of iteration loops
	QuadrantAware bool     `yaml:"quadrant_aware"` // If true, recover the longitude with atan2 instead of atan
	CheckBounds   bool     `yaml:"check_bounds"`   // If true, reject positions outside Great Britain
	Rounding      Rounding `yaml:"rounding"`       // Integer conversion of the results
}

// NewGridOpt creates a new GridOpt with default values
func NewGridOpt() *GridOpt {
	return &GridOpt{
		Tolerance:     LAT_TOLERANCE,  // Coarse threshold sized for microcontrollers
		MaxIter:       MAX_LOOP_COUNT, // Normal inputs converge in a few loops
		QuadrantAware: false,          // Single-quadrant atan
		CheckBounds:   false,          // No bounds check
		Rounding:      Truncate,       // Truncate toward zero
	}
}

// GridSol contains the result of GeodeticToGrid
type GridSol struct {
	Grid PosGrid // National Grid easting/northing [m]
	Elev float64 // Height above the Airy 1830 ellipsoid [m]
	Airy PosLLH  // OSGB36 geodetic position on Airy 1830
	Iter int     // Number of latitude loops
}

// InGB reports whether a WGS84 position [deg] lies within Great Britain's extent
func InGB(lat, lon float64) bool {
	return GB_MIN_LAT <= lat && lat <= GB_MAX_LAT && GB_MIN_LON <= lon && lon <= GB_MAX_LON
}

// GeodeticToGrid converts a WGS84 position (lat/lon in degrees, height in
// metres) to National Grid easting/northing and Airy 1830 elevation.
func GeodeticToGrid(lat, lon, hei float64, opt *GridOpt) (*GridSol, error) {
	if opt == nil {
		opt = NewGridOpt()
	}
	if opt.CheckBounds && !InGB(lat, lon) {
		return nil, fmt.Errorf("lat=%.6f lon=%.6f outside Great Britain: %w", lat, lon, ErrOutOfDomain)
	}

	// WGS84 geodetic -> cartesian
	wgs := PosLLH{Lat: ToRad(lat), Lon: ToRad(lon), Hei: hei}
	xyz := wgs.ToXYZ(WGS84Ellipsoid())

	// WGS84 cartesian -> OSGB36 cartesian
	hxyz := OSGB36Helmert().Apply(xyz)
	PrintD(2, "\txyz(wgs84)= %s, xyz(osgb36)= %s\n", xyz.String(), hxyz.String())

	// OSGB36 cartesian -> Airy geodetic
	airy, iter, err := hxyz.ToLLH(AiryEllipsoid(), opt)
	if err != nil {
		return nil, fmt.Errorf("cartesian to geodetic failed: %w", err)
	}
	PrintD(2, "\tllh(airy)= %s (%d loops)\n", airy.String(), iter)

	// Airy geodetic -> National Grid
	grid := ToGrid(airy)
	PrintD(2, "\tgrid= %s, elev= %.4f\n", grid.String(), airy.Hei)

	return &GridSol{
		Grid: grid,
		Elev: airy.Hei,
		Airy: airy,
		Iter: iter,
	}, nil
}

// Integer converts the solution to the integer outputs of ConvertToGrid.
// Values a uint32/int32 cannot hold are reported as ErrOutOfDomain.
func (sol *GridSol) Integer(r Rounding) (easting, northing uint32, elev int32, err error) {
	e := r.Apply(sol.Grid.E)
	n := r.Apply(sol.Grid.N)
	h := r.Apply(sol.Elev)
	if e < 0 || e > MAX_GRID_UINT32 || n < 0 || n > MAX_GRID_UINT32 {
		return 0, 0, 0, fmt.Errorf("grid position %s not representable: %w", sol.Grid.String(), ErrOutOfDomain)
	}
	if h < math.MinInt32 || h > math.MaxInt32 {
		return 0, 0, 0, fmt.Errorf("elevation %.3f not representable: %w", sol.Elev, ErrOutOfDomain)
	}
	return uint32(e), uint32(n), int32(h), nil
}

// ConvertToGrid converts a WGS84 position (degrees, metres) to integer
// National Grid easting/northing and Airy 1830 elevation with default options.
func ConvertToGrid(lat, lon, hei float64) (easting, northing uint32, elev int32, err error) {
	opt := NewGridOpt()
	sol, err := GeodeticToGrid(lat, lon, hei, opt)
	if err != nil {
		return 0, 0, 0, err
	}
	return sol.Integer(opt.Rounding)
}

// GridToGeodetic converts National Grid easting/northing and Airy 1830
// elevation back to a WGS84 position (radians, metres).
func GridToGeodetic(e, n, elev float64, opt *GridOpt) (PosLLH, error) {
	if opt == nil {
		opt = NewGridOpt()
	}

	// National Grid -> Airy geodetic
	airy, err := FromGrid(PosGrid{E: e, N: n}, opt)
	if err != nil {
		return PosLLH{}, fmt.Errorf("grid to geodetic failed: %w", err)
	}
	airy.Hei = elev

	// Airy geodetic -> OSGB36 cartesian -> WGS84 cartesian
	hxyz := airy.ToXYZ(AiryEllipsoid())
	xyz, err := OSGB36Helmert().Invert(hxyz)
	if err != nil {
		return PosLLH{}, err
	}

	// WGS84 cartesian -> WGS84 geodetic
	wgs, iter, err := xyz.ToLLH(WGS84Ellipsoid(), opt)
	if err != nil {
		return PosLLH{}, fmt.Errorf("cartesian to geodetic failed: %w", err)
	}
	PrintD(2, "\tllh(wgs84)= %s (%d loops)\n", wgs.String(), iter)

	if opt.CheckBounds && !InGB(ToDeg(wgs.Lat), ToDeg(wgs.Lon)) {
		return PosLLH{}, fmt.Errorf("lat=%.6f lon=%.6f outside Great Britain: %w", ToDeg(wgs.Lat), ToDeg(wgs.Lon), ErrOutOfDomain)
	}
	return wgs, nil
}
