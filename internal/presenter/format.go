// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"math"
	"strconv"

	"github.com/wneessen/weather-tui/internal/weather"
)

const (
	// CompassNone is returned for wind directions outside of 0-360 degrees.
	CompassNone = "none"

	IconDrop = "drop"
	IconSnow = "snow"

	kelvinOffset = 273
)

// Temperature converts kelvin to a whole degree celsius label. The kelvin value is floored
// before the offset is subtracted, so 272.9K is "-1°C".
func Temperature(kelvin float64) string {
	return strconv.Itoa(int(math.Floor(kelvin))-kelvinOffset) + "°C"
}

// CompassDirection maps a wind direction in degrees to one of the 8 compass points.
func CompassDirection(degrees int) string {
	switch {
	case degrees < 0 || degrees > 360:
		return CompassNone
	case degrees <= 22 || degrees >= 337:
		return "N"
	case degrees <= 66:
		return "NE"
	case degrees <= 111:
		return "E"
	case degrees <= 156:
		return "SE"
	case degrees <= 201:
		return "S"
	case degrees <= 246:
		return "SW"
	case degrees <= 291:
		return "W"
	default:
		return "NW"
	}
}

// PrecipitationProbability formats a probability in [0,1] as truncated percentage. The
// truncation is plain, so float artifacts are kept: 0.29 renders as 28%.
func PrecipitationProbability(pop float64) string {
	return strconv.Itoa(int(pop*100)) + "%"
}

// Precipitation returns the amount label and the icon marker for the day. Rain takes
// precedence over snow.
func Precipitation(day weather.Daily) (amount, icon string) {
	switch {
	case day.Rain.IsSet():
		return formatFloat(day.Rain.Value()) + "mm", IconDrop
	case day.Snow.IsSet():
		return formatFloat(day.Snow.Value()) + "mm", IconSnow
	default:
		return "0", IconDrop
	}
}

func Pressure(hpa int) string {
	return strconv.Itoa(hpa) + "hPa"
}

func WindSpeed(ms float64) string {
	return formatFloat(ms) + "m/s"
}

// formatFloat prints the shortest representation, but keeps one decimal place for whole
// numbers ("2.0", not "2").
func formatFloat(val float64) string {
	if val == math.Trunc(val) && !math.IsInf(val, 0) {
		return strconv.FormatFloat(val, 'f', 1, 64)
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}
