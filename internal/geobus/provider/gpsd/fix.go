// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package gpsd

import "math"

const (
	fallbackAccuracy3DFix = 10  // ~10 m typical consumer GPS in open sky
	fallbackAccuracy2DFix = 25  // worse than 3D, but still accurate enough
	fallbackAccuracyNoFix = 1e6 // effectively unusable

	mode2D = 2
	mode3D = 3
)

// Fix represents a single TPV report from gpsd.
type Fix struct {
	Lat  float64
	Lon  float64
	Alt  float64
	Epx  float64
	Epy  float64
	Mode int
}

// Has2DFix reports whether the fix has at least a 2D fix.
func (f Fix) Has2DFix() bool {
	return f.Mode >= mode2D
}

// Accuracy returns the horizontal error estimate in meters. Receivers that do not report
// error estimates get a typical value for their fix mode.
func (f Fix) Accuracy() float64 {
	if f.Epx > 0 && f.Epy > 0 {
		return math.Hypot(f.Epx, f.Epy)
	}
	switch f.Mode {
	case mode3D:
		return fallbackAccuracy3DFix
	case mode2D:
		return fallbackAccuracy2DFix
	default:
		return fallbackAccuracyNoFix
	}
}
