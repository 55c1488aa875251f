// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestOSGB36Helmert_Parameters(t *testing.T) {
	h := OSGB36Helmert()

	// Rotations converted from arcseconds
	assert.InDelta(t, -0.000000728190149026, h.Rx, 1e-18)
	assert.InDelta(t, -0.000001197489792340, h.Ry, 1e-18)
	assert.InDelta(t, -0.000004082616008623, h.Rz, 1e-18)
	assert.InDelta(t, 0.0000204894, h.S, 1e-15)
	assert.Equal(t, -446.448, h.Tx)
	assert.Equal(t, 125.157, h.Ty)
	assert.Equal(t, -542.06, h.Tz)
}

func TestHelmert_ApplyMatchesMatrix(t *testing.T) {
	h := OSGB36Helmert()
	llh := PosLLH{Lat: ToRad(52.657977), Lon: ToRad(1.716038), Hei: 0}
	xyz := llh.ToXYZ(WGS84Ellipsoid())

	got := h.Apply(xyz)

	var v mat.VecDense
	v.MulVec(h.Matrix(), mat.NewVecDense(3, []float64{xyz.X, xyz.Y, xyz.Z}))
	want := []float64{v.AtVec(0) + h.Tx, v.AtVec(1) + h.Ty, v.AtVec(2) + h.Tz}

	assert.True(t, floats.EqualApprox([]float64{got.X, got.Y, got.Z}, want, 1e-6),
		"Apply = %v, matrix form = %v", got, want)
}

func TestHelmert_ShiftMagnitude(t *testing.T) {
	h := OSGB36Helmert()
	llh := PosLLH{Lat: ToRad(54.0), Lon: ToRad(-2.0), Hei: 0}
	xyz := llh.ToXYZ(WGS84Ellipsoid())
	got := h.Apply(xyz)

	// WGS84 and OSGB36 are a few hundred metres apart over Britain
	d := floats.Distance([]float64{got.X, got.Y, got.Z}, []float64{xyz.X, xyz.Y, xyz.Z}, 2)
	assert.Greater(t, d, 300.0)
	assert.Less(t, d, 1000.0)
}

func TestHelmert_InvertRoundTrip(t *testing.T) {
	h := OSGB36Helmert()
	points := []PosXYZ{
		{X: 3874938.849, Y: 116218.624, Z: 5047168.208},
		{X: 4000000, Y: -200000, Z: 4900000},
		{X: 3500000, Y: 50000, Z: 5300000},
	}
	for _, p := range points {
		q, err := h.Invert(h.Apply(p))
		require.NoError(t, err)
		assert.InDelta(t, p.X, q.X, 1e-6)
		assert.InDelta(t, p.Y, q.Y, 1e-6)
		assert.InDelta(t, p.Z, q.Z, 1e-6)
	}
}

func TestHelmert_InvertIdentity(t *testing.T) {
	p := PosXYZ{X: 1, Y: 2, Z: 3}
	q, err := Helmert{}.Invert(p)
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestHelmert_InvertSingular(t *testing.T) {
	// Scale of -1 zeroes the diagonal and, without rotation, the whole matrix
	_, err := Helmert{S: -1}.Invert(PosXYZ{X: 1, Y: 2, Z: 3})
	assert.Error(t, err)
}
