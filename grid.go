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

//-------------------------------------------------------------------
// PosGrid
//-------------------------------------------------------------------

// PosGrid is a National Grid position [m]
type PosGrid struct {
	E float64
	N float64
}

func (g *PosGrid) String() string {
	return fmt.Sprintf("%.3f %.3f", g.E, g.N)
}

// Curvature terms shared by the forward and inverse projection
type curvature struct {
	nu, rho, eta2 float64
}

func newCurvature(lat float64) curvature {
	slat2 := SQ(math.Sin(lat))
	nu := AF0 / math.Sqrt(1-AIRY_E2*slat2)
	rho := nu * (1 - AIRY_E2) / (1 - AIRY_E2*slat2)
	return curvature{nu: nu, rho: rho, eta2: nu/rho - 1}
}

// ToGrid projects an Airy 1830 geodetic position onto the National Grid
// (Redfearn series). The height is ignored.
func ToGrid(llh PosLLH) PosGrid {
	lat := llh.Lat
	c := newCurvature(lat)
	nu, rho, eta2 := c.nu, c.rho, c.eta2

	slat := math.Sin(lat)
	clat := math.Cos(lat)
	clat3 := math.Pow(clat, 3)
	clat5 := math.Pow(clat, 5)
	tlat2 := SQ(math.Tan(lat))
	tlat4 := SQ(tlat2)

	pp := llh.Lon - LAM0

	// Easting
	IV := nu * clat
	V := (nu / 6) * clat3 * (nu/rho - tlat2)
	VI := (nu / 120) * clat5 * (5 - 18*tlat2 + tlat4 + 14*eta2 - 58*tlat2*eta2)
	e := E0 + pp*IV + math.Pow(pp, 3)*V + math.Pow(pp, 5)*VI

	// Northing
	I := MeridionalArc(lat) + N0
	II := (nu / 2) * slat * clat
	III := (nu / 24) * slat * clat3 * (5 - tlat2 + 9*eta2)
	IIIA := (nu / 720) * slat * clat5 * (61 - 58*tlat2 + tlat4)
	n := I + SQ(pp)*II + math.Pow(pp, 4)*III + math.Pow(pp, 6)*IIIA

	return PosGrid{E: e, N: n}
}

// FromGrid is the inverse of ToGrid. The latitude is found by iterating on
// the meridional arc until the northing residual is under ARC_TOLERANCE.
// The returned height is zero.
func FromGrid(g PosGrid, opt *GridOpt) (PosLLH, error) {
	if opt == nil {
		opt = NewGridOpt()
	}
	maxIter := opt.MaxIter
	if maxIter <= 0 {
		maxIter = MAX_LOOP_COUNT
	}

	lat := (g.N-N0)/AF0 + PHI0
	M := MeridionalArc(lat)
	for loop := 0; math.Abs(g.N-N0-M) >= ARC_TOLERANCE; loop++ {
		if loop == maxIter {
			return PosLLH{}, fmt.Errorf("number of loop reached max (%d), residual=%.6f: %w", maxIter, g.N-N0-M, ErrNotConverged)
		}
		lat += (g.N - N0 - M) / AF0
		M = MeridionalArc(lat)
		PrintD(3, "\tLOOP %d: lat'= %.12f, dN= %.6f\n", loop+1, ToDeg(lat), g.N-N0-M)
	}

	c := newCurvature(lat)
	nu, rho, eta2 := c.nu, c.rho, c.eta2
	tlat := math.Tan(lat)
	tlat2 := SQ(tlat)
	tlat4 := SQ(tlat2)
	tlat6 := tlat4 * tlat2
	seclat := 1 / math.Cos(lat)

	VII := tlat / (2 * rho * nu)
	VIII := tlat / (24 * rho * math.Pow(nu, 3)) * (5 + 3*tlat2 + eta2 - 9*tlat2*eta2)
	IX := tlat / (720 * rho * math.Pow(nu, 5)) * (61 + 90*tlat2 + 45*tlat4)
	X := seclat / nu
	XI := seclat / (6 * math.Pow(nu, 3)) * (nu/rho + 2*tlat2)
	XII := seclat / (120 * math.Pow(nu, 5)) * (5 + 28*tlat2 + 24*tlat4)
	XIIA := seclat / (5040 * math.Pow(nu, 7)) * (61 + 662*tlat2 + 1320*tlat4 + 720*tlat6)

	de := g.E - E0
	return PosLLH{
		Lat: lat - VII*SQ(de) + VIII*math.Pow(de, 4) - IX*math.Pow(de, 6),
		Lon: LAM0 + X*de - XI*math.Pow(de, 3) + XII*math.Pow(de, 5) - XIIA*math.Pow(de, 7),
	}, nil
}
