// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import "math"

// Series coefficients of the meridional arc in powers of n.
// The fractions must stay real-valued: 5/4 as integer constants is 1.
func marcCoef() [4]float64 {
	n := NE
	n2 := n * n
	n3 := n2 * n
	return [4]float64{
		1 + n + (5.0/4.0)*n2 + (5.0/4.0)*n3,
		3*n + 3*n2 + (21.0/8.0)*n3,
		(15.0/8.0)*n2 + (15.0/8.0)*n3,
		(35.0 / 24.0) * n3,
	}
}

// MeridionalArc returns the meridional arc [m] on the Airy ellipsoid from the
// latitude of true origin to lat [rad], scaled by F0.
func MeridionalArc(lat float64) float64 {
	c := marcCoef()
	dphi := lat - PHI0
	sphi := lat + PHI0
	return BF0 * (c[0]*dphi -
		c[1]*math.Sin(dphi)*math.Cos(sphi) +
		c[2]*math.Sin(2*dphi)*math.Cos(2*sphi) -
		c[3]*math.Sin(3*dphi)*math.Cos(3*sphi))
}
