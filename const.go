// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package osgrid

const (
	PI = 3.1415926535897932 // Pi

	// WGS84 ellipsoid
	WGS84_A  = 6378137.0           // Semi-major axis [m]
	WGS84_E2 = 0.00669438037928458 // Eccentricity squared

	// Airy 1830 ellipsoid (OSGB36)
	AIRY_A  = 6377563.396     // Semi-major axis [m]
	AIRY_B  = 6356256.91      // Semi-minor axis [m]
	AIRY_E2 = 0.0066705397616 // Eccentricity squared

	// National Grid projection
	F0   = 0.9996012717          // Scale factor on central meridian
	PHI0 = 0.85521133347722145   // Latitude of true origin, 49N [rad]
	LAM0 = -0.034906585039886591 // Longitude of true origin, 2W [rad]
	E0   = 400000.0              // Easting of false origin [m]
	N0   = -100000.0             // Northing of false origin [m]
	AF0  = AIRY_A * F0           // Scaled semi-major axis [m]
	BF0  = AIRY_B * F0           // Scaled semi-minor axis [m]
	NE   = (AF0 - BF0) / (AF0 + BF0)
)

// Helmert parameters WGS84 -> OSGB36
const (
	HELMERT_TX = -446.448                  // [m]
	HELMERT_TY = 125.157                   // [m]
	HELMERT_TZ = -542.06                   // [m]
	HELMERT_RX = -0.1502 / 3600 * PI / 180 // [rad]
	HELMERT_RY = -0.247 / 3600 * PI / 180  // [rad]
	HELMERT_RZ = -0.8421 / 3600 * PI / 180 // [rad]
	HELMERT_S  = 20.4894e-6                // 20.4894 ppm
)

// Solver constants
const (
	LAT_TOLERANCE   = 1.0 / 1024 // Latitude convergence threshold [rad]
	MAX_LOOP_COUNT  = 20         // Maximum number of iteration loops
	ARC_TOLERANCE   = 0.00001    // Meridional arc residual for the grid inverse [m]
	GB_MIN_LAT      = 49.0       // Extent of Great Britain [deg]
	GB_MAX_LAT      = 61.0
	GB_MIN_LON      = -8.0
	GB_MAX_LON      = 2.0
	MAX_GRID_UINT32 = 4294967295.0
)
