// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Helmert holds a 7-parameter similarity transform between two cartesian
// frames, small-rotation form with positive scale.
type Helmert struct {
	Tx, Ty, Tz float64 // Translation [m]
	Rx, Ry, Rz float64 // Rotation [rad]
	S          float64 // Scale (ppm already divided by 1e6)
}

// OSGB36Helmert returns the fixed WGS84 -> OSGB36 parameter set
func OSGB36Helmert() Helmert {
	return Helmert{
		Tx: HELMERT_TX,
		Ty: HELMERT_TY,
		Tz: HELMERT_TZ,
		Rx: HELMERT_RX,
		Ry: HELMERT_RY,
		Rz: HELMERT_RZ,
		S:  HELMERT_S,
	}
}

func (h Helmert) Apply(pos PosXYZ) PosXYZ {
	x, y, z := pos.X, pos.Y, pos.Z
	return PosXYZ{
		X: x + x*h.S - y*h.Rz + z*h.Ry + h.Tx,
		Y: x*h.Rz + y + y*h.S - z*h.Rx + h.Ty,
		Z: -x*h.Ry + y*h.Rx + z + z*h.S + h.Tz,
	}
}

// Matrix returns the linear part of the transform, (1+s)I + R
func (h Helmert) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1 + h.S, -h.Rz, h.Ry,
		h.Rz, 1 + h.S, -h.Rx,
		-h.Ry, h.Rx, 1 + h.S,
	})
}

// Invert undoes Apply exactly by solving M x = x' - t.
// Negating the parameters would only be correct to first order.
func (h Helmert) Invert(pos PosXYZ) (PosXYZ, error) {
	M := h.Matrix()
	b := mat.NewVecDense(3, []float64{pos.X - h.Tx, pos.Y - h.Ty, pos.Z - h.Tz})

	var x mat.VecDense
	if err := x.SolveVec(M, b); err != nil {
		return PosXYZ{}, fmt.Errorf("helmert inverse failed, err= %w", err)
	}
	if DBG_ >= 4 {
		PrintA("M=\n")
		PrintMat(M)
		PrintA("x=\n")
		PrintMat(&x)
	}
	return PosXYZ{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}, nil
}
