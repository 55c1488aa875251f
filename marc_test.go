// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import (
	"math"
	"testing"
)

func TestMarcCoef_Fractions(t *testing.T) {
	n := NE
	c := marcCoef()

	want := [4]float64{
		1 + n + 1.25*n*n + 1.25*n*n*n,
		3*n + 3*n*n + 2.625*n*n*n,
		1.875*n*n + 1.875*n*n*n,
		35.0 / 24.0 * n * n * n,
	}
	for i := range want {
		if math.Abs(c[i]-want[i]) > 1e-15 {
			t.Errorf("coef[%d] = %.17g, want %.17g", i, c[i], want[i])
		}
	}

	// Integer division would have turned 5/4 into 1 and 35/24 into 1.
	truncated := 1 + n + n*n + n*n*n
	if c[0] == truncated {
		t.Errorf("coef[0] = %.17g equals the truncated-fraction value", c[0])
	}
	if math.Abs(c[3]-n*n*n) < 1e-12 {
		t.Errorf("coef[3] = %.17g, 35/24 was truncated", c[3])
	}
}

func TestMeridionalArc_TrueOrigin(t *testing.T) {
	if m := MeridionalArc(PHI0); m != 0 {
		t.Errorf("MeridionalArc(PHI0) = %v, want 0", m)
	}
}

// Ordnance Survey worked example: lat 52 39 27.2531 N gives M = 406688.29 m
func TestMeridionalArc_WorkedExample(t *testing.T) {
	lat := ToRad(52 + 39.0/60 + 27.2531/3600)
	m := MeridionalArc(lat)
	if d := math.Abs(m - 406688.296); d > 0.01 {
		t.Errorf("MeridionalArc = %.4f, want ~406688.296 (delta=%.4f)", m, d)
	}
}

func TestMeridionalArc_Monotonic(t *testing.T) {
	prev := MeridionalArc(ToRad(49.0))
	for lat := 49.5; lat <= 61.0; lat += 0.5 {
		m := MeridionalArc(ToRad(lat))
		if m <= prev {
			t.Fatalf("MeridionalArc not increasing at %.1f: %.3f <= %.3f", lat, m, prev)
		}
		// One degree of meridian is about 111 km
		if d := m - prev; d < 55000 || d > 56500 {
			t.Errorf("arc between %.1f and %.1f = %.1f m, want ~55.6 km", lat-0.5, lat, d)
		}
		prev = m
	}
}

func TestMeridionalArc_Antisymmetric(t *testing.T) {
	for _, d := range []float64{0.001, 0.01, 0.1} {
		up := MeridionalArc(PHI0 + d)
		down := MeridionalArc(PHI0 - d)
		if up <= 0 || down >= 0 {
			t.Errorf("sign of arc at PHI0+-%.3f: %.3f, %.3f", d, up, down)
		}
	}
}
