// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

import "errors"

var (
	// The latitude iteration did not fall under the tolerance within the loop limit
	ErrNotConverged = errors.New("iteration did not converge")

	// The position lies outside the area the National Grid can represent
	ErrOutOfDomain = errors.New("position out of domain")

	// Single-quadrant atan cannot recover the longitude when x <= 0
	ErrDegenerateLongitude = errors.New("degenerate longitude solve")
)
