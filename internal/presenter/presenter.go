// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter turns weather payloads into display ready view models. All output is
// plain strings, no further formatting is needed by the views.
package presenter

import (
	"errors"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"
	"golang.org/x/text/language"

	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/weather"
)

const (
	// FullDaySlots is the number of 3-hour slots of a complete day.
	FullDaySlots = 8

	timeLabelFormat = "15:04"
	weekdayFormat   = "l"
)

var ErrMissingLocalizer = errors.New("localizer is required")

// Today is the view model of the current conditions.
type Today struct {
	Location            string
	TempWithDescription string
	Pop                 string
	Precipitation       string
	PrecipitationIcon   string
	Pressure            string
	WindSpeed           string
	WindDirection       string
	Icon                string

	Sunrise       string
	Sunset        string
	MoonPhase     string
	MoonPhaseIcon string
}

// ForecastSlot is a single 3-hour forecast entry.
type ForecastSlot struct {
	Temperature string
	Time        string
	Description string
	Icon        string
}

// ForecastDay groups the slots of one calendar day.
type ForecastDay struct {
	Header string
	Slots  []ForecastSlot
}

// ForecastView is the view model of the forecast list.
type ForecastView struct {
	City string
	Days []ForecastDay
}

// ViewModel is everything a view needs after a successful fetch.
type ViewModel struct {
	Today    Today
	Forecast ForecastView
}

type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	location  *time.Location
}

// New returns a Presenter that localizes labels with the given localizer and weekday names
// for the given language.
func New(localizer *spreak.Localizer, lang language.Tag) (*Presenter, error) {
	if localizer == nil {
		return nil, ErrMissingLocalizer
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, err
	}
	return &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(lang),
		location:  time.Local,
	}, nil
}

// Build creates the ViewModel for a joined pair of payloads. at is the time the sun and moon
// data is computed for.
func (p *Presenter) Build(coord geobus.Coordinate, current *weather.Current, forecast *weather.Forecast,
	at time.Time,
) ViewModel {
	return ViewModel{
		Today:    p.Today(coord, current, forecast.Location, at),
		Forecast: p.Forecast(forecast),
	}
}

// Today builds the view model of the current conditions.
func (p *Presenter) Today(coord geobus.Coordinate, current *weather.Current, name weather.LocationName,
	at time.Time,
) Today {
	day, _ := current.Today()
	amount, icon := Precipitation(day)
	condition := current.PrimaryCondition()

	today := Today{
		Location:            name.String(),
		TempWithDescription: Temperature(current.TemperatureKelvin) + " | " + condition.Description,
		Pop:                 PrecipitationProbability(day.PrecipitationProbability),
		Precipitation:       amount,
		PrecipitationIcon:   icon,
		Pressure:            Pressure(current.PressureHPa),
		WindSpeed:           WindSpeed(current.WindSpeedMS),
		WindDirection:       CompassDirection(current.WindDegrees),
		Icon:                condition.Icon,
	}

	local := at.In(p.location)
	rise, set := sunrise.SunriseSunset(coord.Lat, coord.Lon, local.Year(), local.Month(), local.Day())
	if !rise.IsZero() {
		today.Sunrise = rise.In(p.location).Format(timeLabelFormat)
	}
	if !set.IsZero() {
		today.Sunset = set.In(p.location).Format(timeLabelFormat)
	}
	moon := moonphase.New(at)
	today.MoonPhase = moon.PhaseName()
	today.MoonPhaseIcon = MoonPhaseIcon[today.MoonPhase]

	return today
}

// Forecast partitions the forecast entries by local calendar day, preserving their order.
func (p *Presenter) Forecast(forecast *weather.Forecast) ForecastView {
	view := ForecastView{City: forecast.Location.City}

	var current *ForecastDay
	var currentDate time.Time
	for _, entry := range forecast.Entries {
		local := entry.Time.In(p.location)
		date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location)
		if current == nil || !date.Equal(currentDate) {
			view.Days = append(view.Days, ForecastDay{Header: p.humanizer.FormatTime(local, weekdayFormat)})
			current = &view.Days[len(view.Days)-1]
			currentDate = date
		}
		condition := entry.PrimaryCondition()
		current.Slots = append(current.Slots, ForecastSlot{
			Temperature: Temperature(entry.TemperatureKelvin),
			Time:        local.Format(timeLabelFormat),
			Description: condition.Description,
			Icon:        condition.Icon,
		})
	}

	if len(view.Days) > 0 && len(view.Days[0].Slots) < FullDaySlots {
		view.Days[0].Header = p.localizer.Get("Today")
	}
	return view
}
