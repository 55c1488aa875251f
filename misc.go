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
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// ------------------------------------
// Mini functions
// ------------------------------------

func SQ(x float64) float64 {
	return x * x
}

func ToDeg(rad float64) float64 {
	return rad / PI * 180.0
}

func ToRad(deg float64) float64 {
	return deg / 180.0 * PI
}

// ------------------------------------
// Debug print function
// ------------------------------------

func PrintMat(X mat.Matrix) {
	r, c := X.Dims()
	fmt.Fprintf(os.Stderr, "(%d x %d)\n", r, c)
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	fmt.Fprintf(os.Stderr, "%v\n", fa)
}

func PrintA(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}

func PrintAIf(cond bool, format string, a ...any) {
	if cond {
		PrintA(format, a...)
	}
}

// Debug display level
var DBG_ int

// Debug display
func PrintD(v int, format string, a ...any) {
	PrintAIf(DBG_ >= v, format, a...)
}

func PrintE(err error) {
	fmt.Fprintf(os.Stderr, "err=%s\n", err.Error())
}

// ------------------------------------
// Integer conversion of grid values
// ------------------------------------

// Rounding selects how metres are turned into integers (0: truncate, 1: nearest)
type Rounding int

const (
	Truncate Rounding = iota
	Nearest
)

var roundingNames = []string{"trunc", "round"}

func (p *Rounding) Set(s string) error {
	i := slices.Index(roundingNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return fmt.Errorf("unknown rounding mode: %q (want %s)", s, strings.Join(roundingNames, " or "))
	}
	*p = Rounding(i)
	return nil
}

func (p *Rounding) String() string {
	switch *p {
	case Truncate:
		return "trunc"
	case Nearest:
		return "round"
	default:
		return "UNKNOWN!"
	}
}

// UnmarshalText lets option files spell the mode by name
func (p *Rounding) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

// Apply converts v according to the rounding mode.
// Truncation goes toward zero, as an integer assignment in C would.
func (p Rounding) Apply(v float64) float64 {
	if p == Nearest {
		return math.Round(v)
	}
	return math.Trunc(v)
}
