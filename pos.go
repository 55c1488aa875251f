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
	"strconv"
	"strings"
)

//-------------------------------------------------------------------
// Ellipsoid
//-------------------------------------------------------------------

type Ellipsoid struct {
	A  float64 // Semi-major axis [m]
	E2 float64 // Eccentricity squared
}

func WGS84Ellipsoid() Ellipsoid {
	return Ellipsoid{A: WGS84_A, E2: WGS84_E2}
}

func AiryEllipsoid() Ellipsoid {
	return Ellipsoid{A: AIRY_A, E2: AIRY_E2}
}

// Radius of curvature in the prime vertical
func (ell Ellipsoid) Nu(lat float64) float64 {
	return ell.A / math.Sqrt(1-ell.E2*SQ(math.Sin(lat)))
}

//-------------------------------------------------------------------
// PosLLH
//-------------------------------------------------------------------

// PosLLH is a geodetic position. Lat/Lon are in radians, Hei is the
// height above the ellipsoid the position refers to.
type PosLLH struct {
	Lat float64
	Lon float64
	Hei float64
}

func NewPosLLH(lat, lon, hei float64) *PosLLH {
	return &PosLLH{
		Lat: lat,
		Lon: lon,
		Hei: hei,
	}
}

func (llh *PosLLH) ToXYZ(ell Ellipsoid) PosXYZ {
	v := ell.Nu(llh.Lat)
	return PosXYZ{
		X: (v + llh.Hei) * math.Cos(llh.Lat) * math.Cos(llh.Lon),
		Y: (v + llh.Hei) * math.Cos(llh.Lat) * math.Sin(llh.Lon),
		Z: ((1-ell.E2)*v + llh.Hei) * math.Sin(llh.Lat),
	}
}

// Read from string ("lat lon hei", degrees)
func (llh *PosLLH) Set(s string) error {
	var err error
	f := strings.Fields(s)
	if len(f) != 3 {
		return fmt.Errorf("want 3 fields (lat lon hei), got %d", len(f))
	}
	llh.Lat, err = strconv.ParseFloat(f[0], 64)
	if err != nil {
		return err
	}
	llh.Lon, err = strconv.ParseFloat(f[1], 64)
	if err != nil {
		return err
	}
	llh.Hei, err = strconv.ParseFloat(f[2], 64)
	if err != nil {
		return err
	}
	llh.Lat = ToRad(llh.Lat)
	llh.Lon = ToRad(llh.Lon)
	return nil
}

// Convert to string (degrees)
func (llh *PosLLH) String() string {
	return fmt.Sprintf("%.9f %.9f %.4f", ToDeg(llh.Lat), ToDeg(llh.Lon), llh.Hei)
}

//-------------------------------------------------------------------
// PosXYZ
//-------------------------------------------------------------------

// PosXYZ is a geocentric cartesian position [m]
type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func NewPosXYZ(x, y, z float64) *PosXYZ {
	return &PosXYZ{
		X: x,
		Y: y,
		Z: z,
	}
}

// ToLLH converts to geodetic coordinates on ell by fixed-point iteration of
// the latitude. It returns the number of loops that were needed.
//
// Longitude uses atan(y/x) unless opt.QuadrantAware is set, so x <= 0 is
// rejected with ErrDegenerateLongitude in that mode.
func (pos *PosXYZ) ToLLH(ell Ellipsoid, opt *GridOpt) (PosLLH, int, error) {
	if opt == nil {
		opt = NewGridOpt()
	}

	// Longitude
	var lon float64
	if opt.QuadrantAware {
		lon = math.Atan2(pos.Y, pos.X)
	} else {
		if pos.X <= 0 {
			return PosLLH{}, 0, fmt.Errorf("x=%.3f: %w", pos.X, ErrDegenerateLongitude)
		}
		lon = math.Atan(pos.Y / pos.X)
	}

	p := math.Sqrt(SQ(pos.X) + SQ(pos.Y))
	if p == 0 {
		return PosLLH{}, 0, fmt.Errorf("position on the polar axis: %w", ErrOutOfDomain)
	}

	// Initial latitude assumes zero height
	lat := math.Atan(pos.Z / (p * (1 - ell.E2)))

	maxIter := opt.MaxIter
	if maxIter <= 0 {
		maxIter = MAX_LOOP_COUNT
	}

	var v float64
	for loop := 0; ; loop++ {
		if loop == maxIter {
			return PosLLH{}, loop, fmt.Errorf("number of loop reached max (%d): %w", maxIter, ErrNotConverged)
		}
		v = ell.Nu(lat)
		next := math.Atan((pos.Z + ell.E2*v*math.Sin(lat)) / p)
		dlat := math.Abs(next - lat)
		lat = next
		PrintD(3, "\tLOOP %d: lat= %.12f, dlat= %.3e\n", loop+1, ToDeg(lat), dlat)
		if dlat < opt.Tolerance {
			return PosLLH{Lat: lat, Lon: lon, Hei: p/math.Cos(lat) - v}, loop + 1, nil
		}
	}
}

// Read from string ("x y z", metres)
func (pos *PosXYZ) Set(s string) error {
	var err error
	f := strings.Fields(s)
	if len(f) != 3 {
		return fmt.Errorf("want 3 fields (x y z), got %d", len(f))
	}
	if pos.X, err = strconv.ParseFloat(f[0], 64); err != nil {
		return err
	}
	if pos.Y, err = strconv.ParseFloat(f[1], 64); err != nil {
		return err
	}
	if pos.Z, err = strconv.ParseFloat(f[2], 64); err != nil {
		return err
	}
	return nil
}

func (pos *PosXYZ) String() string {
	return fmt.Sprintf("%.4f %.4f %.4f", pos.X, pos.Y, pos.Z)
}
