// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kkyr/fig"
)

const (
	configEnv = "WEATHERTUI"
	appName   = "weather-tui"

	MonitorProbe          = "probe"
	MonitorNetworkManager = "networkmanager"

	DefaultTextTpl    = "{{emojiSpace (icon .Today.Icon)}}{{.Today.TempWithDescription}}"
	DefaultTooltipTpl = "{{.Today.Location}}\n{{loc \"pop\"}}: {{.Today.Pop}}\n" +
		"{{loc \"precipitation\"}}: {{precipIcon .Today.PrecipitationIcon}} {{.Today.Precipitation}}\n" +
		"{{loc \"pressure\"}}: {{.Today.Pressure}}\n{{loc \"windspeed\"}}: {{.Today.WindSpeed}}\n" +
		"{{loc \"winddir\"}}: {{.Today.WindDirection}}\n{{loc \"sunrise\"}}: {{.Today.Sunrise}}\n" +
		"{{loc \"sunset\"}}: {{.Today.Sunset}}\n" +
		"{{loc \"moonphase\"}}: {{.Today.MoonPhaseIcon}} {{loc .Today.MoonPhase}}"
)

var validate = validator.New()

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	LogFile  string     `fig:"log_file"`

	Weather struct {
		APIKey  string        `fig:"api_key"`
		BaseURL string        `fig:"base_url" default:"https://api.openweathermap.org/data/2.5"`
		Timeout time.Duration `fig:"timeout" default:"10s"`
	} `fig:"weather"`

	Location struct {
		Disable         bool          `fig:"disable"`
		GracePeriod     time.Duration `fig:"grace_period" default:"15s"`
		RequireGeoClue  bool          `fig:"require_geoclue"`
		SettingsCommand string        `fig:"settings_command"`
	} `fig:"location"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`

	GeoLocation struct {
		File                   string `fig:"file"`
		GPSDAddr               string `fig:"gpsd_addr" default:"localhost:2947"`
		DisableGeoIP           bool   `fig:"disable_geoip"`
		DisableGeolocationFile bool   `fig:"disable_geolocation_file"`
		DisableICHNAEA         bool   `fig:"disable_ichnaea"`
		DisableGPSD            bool   `fig:"disable_gpsd"`
	} `fig:"geolocation"`

	Connectivity struct {
		// Allowed values: probe, networkmanager
		Monitor       string        `fig:"monitor" default:"probe"`
		ProbeURL      string        `fig:"probe_url" default:"https://connectivitycheck.gstatic.com/generate_204"`
		ProbeInterval time.Duration `fig:"probe_interval" default:"10s"`
	} `fig:"connectivity"`

	Metrics struct {
		Listen string `fig:"listen"`
	} `fig:"metrics"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if err := validate.Var(c.Weather.BaseURL, "required,url"); err != nil {
		return fmt.Errorf("invalid weather base URL %q: %w", c.Weather.BaseURL, err)
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("invalid weather timeout: %s", c.Weather.Timeout)
	}
	if c.Location.GracePeriod <= 0 {
		return fmt.Errorf("invalid location grace period: %s", c.Location.GracePeriod)
	}
	c.Connectivity.Monitor = strings.ToLower(c.Connectivity.Monitor)
	if err := validate.Var(c.Connectivity.Monitor, "oneof=probe networkmanager"); err != nil {
		return fmt.Errorf("invalid connectivity monitor: %s", c.Connectivity.Monitor)
	}
	if c.Connectivity.Monitor == MonitorProbe {
		if err := validate.Var(c.Connectivity.ProbeURL, "required,url"); err != nil {
			return fmt.Errorf("invalid connectivity probe URL %q: %w", c.Connectivity.ProbeURL, err)
		}
		if c.Connectivity.ProbeInterval < time.Second {
			return fmt.Errorf("invalid connectivity probe interval: %s", c.Connectivity.ProbeInterval)
		}
	}
	if c.Metrics.Listen != "" {
		if err := validate.Var(c.Metrics.Listen, "hostname_port"); err != nil {
			return fmt.Errorf("invalid metrics listen address %q: %w", c.Metrics.Listen, err)
		}
	}

	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}
	home, _ := os.UserHomeDir()
	if c.GeoLocation.File == "" {
		c.GeoLocation.File = filepath.Join(home, ".config", appName, "geolocation")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(home, ".cache", appName, appName+".log")
	}
	if c.Location.SettingsCommand == "" {
		c.Location.SettingsCommand = "xdg-open " + filepath.Join(home, ".config", appName)
	}

	return nil
}

// LocationProvidersEnabled reports whether at least one geolocation provider is enabled.
func (c *Config) LocationProvidersEnabled() bool {
	return !c.GeoLocation.DisableGeolocationFile || !c.GeoLocation.DisableGeoIP ||
		!c.GeoLocation.DisableICHNAEA || !c.GeoLocation.DisableGPSD
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
