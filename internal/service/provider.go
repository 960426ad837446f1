// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/wneessen/weather-tui/internal/config"
	"github.com/wneessen/weather-tui/internal/connectivity"
	"github.com/wneessen/weather-tui/internal/geobus"
	"github.com/wneessen/weather-tui/internal/geobus/provider/geofile"
	"github.com/wneessen/weather-tui/internal/geobus/provider/geoip"
	"github.com/wneessen/weather-tui/internal/geobus/provider/gpsd"
	"github.com/wneessen/weather-tui/internal/geobus/provider/ichnaea"
	"github.com/wneessen/weather-tui/internal/http"
	"github.com/wneessen/weather-tui/internal/i18n"
	"github.com/wneessen/weather-tui/internal/location"
	"github.com/wneessen/weather-tui/internal/logger"
	"github.com/wneessen/weather-tui/internal/weather"
	"github.com/wneessen/weather-tui/internal/weather/provider/openweathermap"
)

// selectGeobusProviders returns the enabled position sources. An empty list is not an error,
// location services are reported as disabled in that case.
func (s *Service) selectGeobusProviders(httpClient *http.Client) ([]geobus.Provider, error) {
	var provider []geobus.Provider

	if !s.config.GeoLocation.DisableGeolocationFile {
		provider = append(provider, geofile.New(s.config.GeoLocation.File))
	}

	if !s.config.GeoLocation.DisableGPSD {
		provider = append(provider, gpsd.New(s.config.GeoLocation.GPSDAddr))
	}

	if !s.config.GeoLocation.DisableGeoIP {
		gip, err := geoip.New(httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create GeoIP provider: %w", err)
		}
		provider = append(provider, gip)
	}

	if !s.config.GeoLocation.DisableICHNAEA {
		mls, err := ichnaea.New(httpClient)
		if err != nil {
			s.logger.Error("failed to create ICHNAEA provider", logger.Err(err))
		} else {
			provider = append(provider, mls)
		}
	}

	return provider, nil
}

// selectStatusChecker combines the configured location switch with the GeoClue2 presence
// check if it is required.
func (s *Service) selectStatusChecker() location.StatusChecker {
	statuses := location.Statuses{location.ConfigStatus{
		Disabled:         s.config.Location.Disable,
		ProvidersEnabled: s.config.LocationProvidersEnabled(),
	}}
	if s.config.Location.RequireGeoClue {
		statuses = append(statuses, location.NewGeoClueStatus())
	}
	return statuses
}

func (s *Service) selectMonitor(httpClient *http.Client) (connectivity.Monitor, error) {
	switch s.config.Connectivity.Monitor {
	case config.MonitorNetworkManager:
		monitor, err := connectivity.NewNetworkManager(s.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create NetworkManager connectivity monitor: %w", err)
		}
		return monitor, nil
	case config.MonitorProbe:
		monitor, err := connectivity.NewProbe(httpClient, s.logger, connectivity.ProbeOptions{
			URL:      s.config.Connectivity.ProbeURL,
			Interval: s.config.Connectivity.ProbeInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create connectivity probe: %w", err)
		}
		return monitor, nil
	default:
		return nil, fmt.Errorf("unsupported connectivity monitor: %s", s.config.Connectivity.Monitor)
	}
}

func (s *Service) selectWeatherProvider(httpClient *http.Client) (weather.Client, error) {
	lang, _ := i18n.Language(s.config.Locale).Base()
	provider, err := openweathermap.New(httpClient, s.logger, openweathermap.Options{
		APIKey:  s.config.Weather.APIKey,
		BaseURL: s.config.Weather.BaseURL,
		Lang:    lang.String(),
		Timeout: s.config.Weather.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenWeatherMap weather provider: %w", err)
	}
	return provider, nil
}
