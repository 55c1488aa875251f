// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Ordnance Survey worked example (OSGB36):
// 52 39 27.2531 N, 1 43 4.5177 E  <->  E 651409.903  N 313177.270
var osExample = struct {
	lat, lon float64
	grid     PosGrid
}{
	lat:  52 + 39.0/60 + 27.2531/3600,
	lon:  1 + 43.0/60 + 4.5177/3600,
	grid: PosGrid{E: 651409.903, N: 313177.270},
}

func TestToGrid_WorkedExample(t *testing.T) {
	got := ToGrid(PosLLH{Lat: ToRad(osExample.lat), Lon: ToRad(osExample.lon)})
	if diff := cmp.Diff(osExample.grid, got, cmpopts.EquateApprox(0, 0.001)); diff != "" {
		t.Errorf("ToGrid mismatch (-want +got):\n%s", diff)
	}
}

func TestToGrid_TrueOrigin(t *testing.T) {
	got := ToGrid(PosLLH{Lat: PHI0, Lon: LAM0})
	want := PosGrid{E: E0, N: N0}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("ToGrid(true origin) mismatch (-want +got):\n%s", diff)
	}
}

func TestToGrid_CentralMeridianSymmetry(t *testing.T) {
	for _, dlon := range []float64{0.5, 2, 4} {
		east := ToGrid(PosLLH{Lat: ToRad(54), Lon: LAM0 + ToRad(dlon)})
		west := ToGrid(PosLLH{Lat: ToRad(54), Lon: LAM0 - ToRad(dlon)})
		if math.Abs((east.E-E0)+(west.E-E0)) > 1e-6 {
			t.Errorf("dlon=%v: easting not symmetric, %.6f vs %.6f", dlon, east.E, west.E)
		}
		if math.Abs(east.N-west.N) > 1e-6 {
			t.Errorf("dlon=%v: northing not symmetric, %.6f vs %.6f", dlon, east.N, west.N)
		}
	}
}

func TestToGrid_IgnoresHeight(t *testing.T) {
	a := ToGrid(PosLLH{Lat: ToRad(53), Lon: ToRad(-1), Hei: 0})
	b := ToGrid(PosLLH{Lat: ToRad(53), Lon: ToRad(-1), Hei: 1000})
	if a != b {
		t.Errorf("height changed the projection: %v vs %v", a, b)
	}
}

func TestFromGrid_WorkedExample(t *testing.T) {
	got, err := FromGrid(osExample.grid, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 1e-7 deg is about a centimetre
	if d := math.Abs(ToDeg(got.Lat) - osExample.lat); d > 1e-7 {
		t.Errorf("lat = %.9f, want %.9f", ToDeg(got.Lat), osExample.lat)
	}
	if d := math.Abs(ToDeg(got.Lon) - osExample.lon); d > 1e-7 {
		t.Errorf("lon = %.9f, want %.9f", ToDeg(got.Lon), osExample.lon)
	}
}

func TestFromGrid_RoundTrip(t *testing.T) {
	grids := []PosGrid{
		{E: 400000, N: -100000},
		{E: 530270, N: 179641},
		{E: 91329, N: 8845},
		{E: 447297, N: 1140915},
		{E: 651409.903, N: 313177.270},
		{E: 200000, N: 900000},
	}
	for _, g := range grids {
		llh, err := FromGrid(g, nil)
		if err != nil {
			t.Fatalf("FromGrid(%v): %v", g, err)
		}
		got := ToGrid(llh)
		if diff := cmp.Diff(g, got, cmpopts.EquateApprox(0, 0.001)); diff != "" {
			t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFromGrid_NotConverged(t *testing.T) {
	opt := NewGridOpt()
	opt.MaxIter = 1
	_, err := FromGrid(PosGrid{E: 400000, N: 1200000}, opt)
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("err = %v, want ErrNotConverged", err)
	}
}
