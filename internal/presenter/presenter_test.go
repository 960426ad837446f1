// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/language"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/i18n"
	"github.com/wneessen/weather-tui/internal/vartype"
	"github.com/wneessen/weather-tui/internal/weather"
)

var (
	testCoord = geobus.Coordinate{Lat: 51.5, Lon: -0.12}
	testAt    = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	testName  = weather.LocationName{City: "London", Country: "GB"}
)

func TestNew(t *testing.T) {
	t.Run("new presenter succeeds", func(t *testing.T) {
		testPresenter(t, "en")
	})
	t.Run("new presenter without localizer fails", func(t *testing.T) {
		if _, err := New(nil, language.English); !errors.Is(err, ErrMissingLocalizer) {
			t.Errorf("expected error to be %s, got %v", ErrMissingLocalizer, err)
		}
	})
}

func TestPresenter_Today(t *testing.T) {
	t.Run("current conditions are formatted", func(t *testing.T) {
		p := testPresenter(t, "en")
		current := &weather.Current{
			TemperatureKelvin: 295.15,
			PressureHPa:       1012,
			WindSpeedMS:       4.1,
			WindDegrees:       10,
			Conditions:        []weather.Condition{{ID: 800, Summary: "Clear", Description: "clear sky", Icon: "01d"}},
			Daily: []weather.Daily{{
				MeanTemperatureKelvin:    294.4,
				PressureHPa:              1011,
				PrecipitationProbability: 0.2,
				Rain:                     vartype.NewVariable(1.5),
			}},
		}
		want := Today{
			Location:            "London GB",
			TempWithDescription: "22°C | clear sky",
			Pop:                 "20%",
			Precipitation:       "1.5mm",
			PrecipitationIcon:   IconDrop,
			Pressure:            "1012hPa",
			WindSpeed:           "4.1m/s",
			WindDirection:       "N",
			Icon:                "01d",
		}
		got := p.Today(testCoord, current, testName, testAt)
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Today{}, "Sunrise", "Sunset", "MoonPhase",
			"MoonPhaseIcon")); diff != "" {
			t.Errorf("unexpected today view (-want +got):\n%s", diff)
		}
		if got.Sunrise == "" || got.Sunset == "" {
			t.Errorf("expected sunrise and sunset to be set, got %q and %q", got.Sunrise, got.Sunset)
		}
		if got.MoonPhase == "" {
			t.Error("expected moon phase to be set")
		}
		if got.MoonPhaseIcon != MoonPhaseIcon[got.MoonPhase] {
			t.Errorf("expected moon phase icon for %s, got %s", got.MoonPhase, got.MoonPhaseIcon)
		}
	})
	t.Run("missing conditions do not panic", func(t *testing.T) {
		p := testPresenter(t, "en")
		current := &weather.Current{TemperatureKelvin: 273, WindDegrees: 400, Daily: []weather.Daily{{}}}
		got := p.Today(testCoord, current, weather.LocationName{City: "Nowhere"}, testAt)
		if got.TempWithDescription != "0°C | " {
			t.Errorf("unexpected temperature label: %q", got.TempWithDescription)
		}
		if got.WindDirection != CompassNone {
			t.Errorf("expected wind direction %s, got %s", CompassNone, got.WindDirection)
		}
		if got.Location != "Nowhere" {
			t.Errorf("expected location Nowhere, got %s", got.Location)
		}
		if got.Precipitation != "0" || got.PrecipitationIcon != IconDrop {
			t.Errorf("unexpected precipitation: %s %s", got.Precipitation, got.PrecipitationIcon)
		}
	})
}

func TestPresenter_Forecast(t *testing.T) {
	t.Run("entries are partitioned by day", func(t *testing.T) {
		p := testPresenter(t, "en")
		forecast := testForecast(time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC), 11)
		view := p.Forecast(forecast)

		if view.City != "London" {
			t.Errorf("expected city London, got %s", view.City)
		}
		if len(view.Days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(view.Days))
		}
		if view.Days[0].Header != "Today" {
			t.Errorf("expected first header to be Today, got %s", view.Days[0].Header)
		}
		if len(view.Days[0].Slots) != 3 || len(view.Days[1].Slots) != 8 {
			t.Errorf("expected 3 and 8 slots, got %d and %d", len(view.Days[0].Slots), len(view.Days[1].Slots))
		}
		wantHeader := p.humanizer.FormatTime(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), weekdayFormat)
		if view.Days[1].Header != wantHeader {
			t.Errorf("expected second header to be %s, got %s", wantHeader, view.Days[1].Header)
		}
		want := ForecastSlot{Temperature: "17°C", Time: "15:00", Description: "broken clouds", Icon: "04d"}
		if diff := cmp.Diff(want, view.Days[0].Slots[0]); diff != "" {
			t.Errorf("unexpected first slot (-want +got):\n%s", diff)
		}
		if view.Days[1].Slots[7].Time != "21:00" {
			t.Errorf("expected last slot at 21:00, got %s", view.Days[1].Slots[7].Time)
		}
	})
	t.Run("a full first day uses the weekday", func(t *testing.T) {
		p := testPresenter(t, "en")
		view := p.Forecast(testForecast(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), 10))
		if view.Days[0].Header == "Today" {
			t.Error("expected full first day to be labeled with its weekday")
		}
		wantHeader := p.humanizer.FormatTime(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), weekdayFormat)
		if view.Days[0].Header != wantHeader {
			t.Errorf("expected header to be %s, got %s", wantHeader, view.Days[0].Header)
		}
	})
	t.Run("today is localized", func(t *testing.T) {
		p := testPresenter(t, "de")
		view := p.Forecast(testForecast(time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC), 2))
		if view.Days[0].Header != "Heute" {
			t.Errorf("expected first header to be Heute, got %s", view.Days[0].Header)
		}
	})
	t.Run("empty forecast", func(t *testing.T) {
		p := testPresenter(t, "en")
		view := p.Forecast(&weather.Forecast{Location: testName})
		if len(view.Days) != 0 {
			t.Errorf("expected no days, got %d", len(view.Days))
		}
	})
}

func TestPresenter_Build(t *testing.T) {
	p := testPresenter(t, "en")
	current := &weather.Current{
		TemperatureKelvin: 295.15,
		WindDegrees:       10,
		Conditions:        []weather.Condition{{Description: "clear sky", Icon: "01d"}},
		Daily:             []weather.Daily{{PrecipitationProbability: 0.2, Rain: vartype.NewVariable(1.5)}},
	}
	vm := p.Build(testCoord, current, testForecast(testAt, 4), testAt)
	if vm.Today.Location != "London GB" {
		t.Errorf("expected location London GB, got %s", vm.Today.Location)
	}
	if vm.Today.WindDirection != "N" || vm.Today.Pop != "20%" || vm.Today.Precipitation != "1.5mm" {
		t.Errorf("unexpected today view: %+v", vm.Today)
	}
	if len(vm.Forecast.Days) != 1 {
		t.Errorf("expected 1 forecast day, got %d", len(vm.Forecast.Days))
	}
}

func testPresenter(t *testing.T, loc string) *Presenter {
	t.Helper()
	localizer, err := i18n.New(loc)
	if err != nil {
		t.Fatalf("failed to create localizer: %s", err)
	}
	p, err := New(localizer, i18n.Language(loc))
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	p.location = time.UTC
	return p
}

func testForecast(start time.Time, slots int) *weather.Forecast {
	forecast := &weather.Forecast{Location: testName}
	for i := range slots {
		forecast.Entries = append(forecast.Entries, weather.ForecastEntry{
			Time:              start.Add(time.Duration(i) * time.Hour * 3),
			TemperatureKelvin: 290.5,
			Conditions:        []weather.Condition{{ID: 803, Description: "broken clouds", Icon: "04d"}},
		})
	}
	return forecast
}
