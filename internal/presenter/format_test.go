// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"testing"

	"github.com/wneessen/weather-tui/internal/vartype"
	"github.com/wneessen/weather-tui/internal/weather"
)

func TestTemperature(t *testing.T) {
	tests := []struct {
		kelvin float64
		want   string
	}{
		{295.0, "22°C"},
		{295.15, "22°C"},
		{273.0, "0°C"},
		{272.9, "-1°C"},
		{300.99, "27°C"},
		{250.5, "-23°C"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Temperature(tt.kelvin); got != tt.want {
				t.Errorf("Temperature(%f): expected %s, got %s", tt.kelvin, tt.want, got)
			}
		})
	}
}

func TestCompassDirection(t *testing.T) {
	t.Run("bucket boundaries", func(t *testing.T) {
		tests := []struct {
			degrees int
			want    string
		}{
			{0, "N"}, {22, "N"}, {337, "N"}, {360, "N"},
			{23, "NE"}, {66, "NE"},
			{67, "E"}, {111, "E"},
			{112, "SE"}, {156, "SE"},
			{157, "S"}, {201, "S"},
			{202, "SW"}, {246, "SW"},
			{247, "W"}, {291, "W"},
			{292, "NW"}, {336, "NW"},
			{-1, CompassNone}, {361, CompassNone}, {720, CompassNone},
		}
		for _, tt := range tests {
			if got := CompassDirection(tt.degrees); got != tt.want {
				t.Errorf("CompassDirection(%d): expected %s, got %s", tt.degrees, tt.want, got)
			}
		}
	})
	t.Run("every degree maps to exactly one point", func(t *testing.T) {
		points := map[string]bool{"N": true, "NE": true, "E": true, "SE": true, "S": true, "SW": true,
			"W": true, "NW": true}
		seen := make(map[string]bool)
		for d := 0; d <= 360; d++ {
			got := CompassDirection(d)
			if !points[got] {
				t.Fatalf("CompassDirection(%d): unexpected value %s", d, got)
			}
			if got != CompassDirection(d) {
				t.Fatalf("CompassDirection(%d) is not stable", d)
			}
			seen[got] = true
		}
		if len(seen) != len(points) {
			t.Errorf("expected all %d points to be used, got %d", len(points), len(seen))
		}
	})
}

func TestPrecipitationProbability(t *testing.T) {
	tests := []struct {
		pop  float64
		want string
	}{
		{0.0, "0%"},
		{0.2, "20%"},
		{0.37, "37%"},
		{0.29, "28%"},
		{0.57, "56%"},
		{0.999, "99%"},
		{1.0, "100%"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := PrecipitationProbability(tt.pop); got != tt.want {
				t.Errorf("PrecipitationProbability(%f): expected %s, got %s", tt.pop, tt.want, got)
			}
		})
	}
}

func TestPrecipitation(t *testing.T) {
	tests := []struct {
		name       string
		day        weather.Daily
		wantAmount string
		wantIcon   string
	}{
		{"rain only", weather.Daily{Rain: vartype.NewVariable(1.5)}, "1.5mm", IconDrop},
		{"snow only", weather.Daily{Snow: vartype.NewVariable(2.0)}, "2.0mm", IconSnow},
		{"rain wins over snow", weather.Daily{Rain: vartype.NewVariable(0.3), Snow: vartype.NewVariable(4.25)},
			"0.3mm", IconDrop},
		{"nothing", weather.Daily{}, "0", IconDrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, icon := Precipitation(tt.day)
			if amount != tt.wantAmount {
				t.Errorf("expected amount %s, got %s", tt.wantAmount, amount)
			}
			if icon != tt.wantIcon {
				t.Errorf("expected icon %s, got %s", tt.wantIcon, icon)
			}
		})
	}
}

func TestPressureAndWindSpeed(t *testing.T) {
	if got := Pressure(1012); got != "1012hPa" {
		t.Errorf("expected 1012hPa, got %s", got)
	}
	if got := WindSpeed(4.1); got != "4.1m/s" {
		t.Errorf("expected 4.1m/s, got %s", got)
	}
	if got := WindSpeed(3); got != "3.0m/s" {
		t.Errorf("expected 3.0m/s, got %s", got)
	}
}

func TestConditionIcon(t *testing.T) {
	if got := ConditionIcon("01d"); got != "☀️" {
		t.Errorf("expected sun icon, got %s", got)
	}
	if got := ConditionIcon("99x"); got != "99x" {
		t.Errorf("expected unknown code to be returned as is, got %s", got)
	}
}
