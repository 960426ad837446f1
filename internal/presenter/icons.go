// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// ConditionIcons maps OpenWeatherMap icon codes to single emoji icons. The trailing "d" or
// "n" of the code selects day or night.
var ConditionIcons = map[string]string{
	"01d": "☀️", // clear sky
	"01n": "🌙",
	"02d": "🌤️", // few clouds
	"02n": "☁️",
	"03d": "⛅", // scattered clouds
	"03n": "☁️",
	"04d": "☁️", // broken clouds
	"04n": "☁️",
	"09d": "🌧️", // shower rain
	"09n": "🌧️",
	"10d": "🌦️", // rain
	"10n": "🌧️",
	"11d": "⛈️", // thunderstorm
	"11n": "⛈️",
	"13d": "❄️", // snow
	"13n": "❄️",
	"50d": "🌫️", // mist
	"50n": "🌫️",
}

// PrecipitationIcons maps the precipitation markers to emoji.
var PrecipitationIcons = map[string]string{
	IconDrop: "💧",
	IconSnow: "🌨️",
}

// ConditionIcon returns the emoji for an icon code or the code itself if it is unknown.
func ConditionIcon(code string) string {
	if icon, ok := ConditionIcons[code]; ok {
		return icon
	}
	return code
}
