// Package config loads the dashboard configuration: a YAML file that is
// written with defaults on first run (0600 perms), with environment/.env
// overrides layered on top for credentials.
// Optional integrations whose credentials are absent are silently
// disabled rather than failing startup.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// WeatherConfig locates the forecast. Weather is always enabled; the
// coordinates default to Berlin when nothing else is configured.
type WeatherConfig struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// TransitConfig holds the Trafiklab credentials and display policy.
// StationID and APIKey are both required for the card to exist.
type TransitConfig struct {
	StationID string `yaml:"station_id" json:"station_id"`
	APIKey    string `yaml:"api_key" json:"api_key"`

	// DelayThresholdSec is the minimum |delay| that earns a warning badge.
	DelayThresholdSec int `yaml:"delay_threshold" json:"delay_threshold"`

	// MaxDepartures bounds the displayed list, applied after sorting.
	MaxDepartures int `yaml:"max_departures" json:"max_departures"`
}

// CalendarConfig holds the iCal subscription.
type CalendarConfig struct {
	ICSURL    string `yaml:"ics_url" json:"ics_url"`
	MaxEvents int    `yaml:"max_events" json:"max_events"`
}

// MenuConfig points at the cafeteria menu page.
type MenuConfig struct {
	URL      string `yaml:"url" json:"url"`
	Selector string `yaml:"selector" json:"selector"`
}

// ScreenConfig drives the motion-sensor screen controller. A zero
// GPIOPin disables the whole service.
type ScreenConfig struct {
	GPIOPin    int    `yaml:"gpio_pin" json:"gpio_pin"`
	Output     string `yaml:"output" json:"output"`
	TimeoutSec int    `yaml:"timeout" json:"timeout"`

	// Cron expressions forcing the screen off at night and back on in
	// the morning. Empty disables quiet hours.
	QuietOffCron string `yaml:"quiet_off" json:"quiet_off"`
	QuietOnCron  string `yaml:"quiet_on" json:"quiet_on"`
}

// CardOverride adjusts a single card's placement and cadence from the
// config file, keyed by card name.
type CardOverride struct {
	Position    string `yaml:"position" json:"position"`
	IntervalSec int    `yaml:"interval" json:"interval"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA display timezone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// UserName is the default name the greeter addresses until a
	// recognition event replaces it.
	UserName string `yaml:"user_name" json:"user_name"`

	Weather  WeatherConfig  `yaml:"weather" json:"weather"`
	Transit  TransitConfig  `yaml:"transit" json:"transit"`
	Calendar CalendarConfig `yaml:"calendar" json:"calendar"`
	Menu     MenuConfig     `yaml:"menu" json:"menu"`
	Screen   ScreenConfig   `yaml:"screen" json:"screen"`

	// Cards holds per-card overrides keyed by card name.
	Cards map[string]CardOverride `yaml:"cards,omitempty" json:"cards,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone: "Europe/Stockholm",
		UserName: "there",
		Weather: WeatherConfig{
			Latitude:  52.5200,
			Longitude: 13.4050,
		},
		Transit: TransitConfig{
			DelayThresholdSec: 60,
			MaxDepartures:     6,
		},
		Calendar: CalendarConfig{
			MaxEvents: 3,
		},
		Screen: ScreenConfig{
			Output:       "HDMI-A-1",
			TimeoutSec:   120,
			QuietOffCron: "0 23 * * *",
			QuietOnCron:  "0 6 * * *",
		},
		Cards: map[string]CardOverride{},
	}
}

// Normalize fills missing or out-of-range values with defaults so partial
// configs from older versions keep working.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "Europe/Stockholm"
	}
	if c.UserName == "" {
		c.UserName = "there"
	}
	if c.Weather.Latitude == 0 && c.Weather.Longitude == 0 {
		c.Weather = WeatherConfig{Latitude: 52.5200, Longitude: 13.4050}
	}
	if c.Transit.DelayThresholdSec <= 0 {
		c.Transit.DelayThresholdSec = 60
	}
	if c.Transit.MaxDepartures <= 0 {
		c.Transit.MaxDepartures = 6
	}
	if c.Calendar.MaxEvents <= 0 {
		c.Calendar.MaxEvents = 3
	}
	if c.Screen.Output == "" {
		c.Screen.Output = "HDMI-A-1"
	}
	if c.Screen.TimeoutSec <= 0 {
		c.Screen.TimeoutSec = 120
	}
	if c.Cards == nil {
		c.Cards = map[string]CardOverride{}
	}
}

// TransitEnabled reports whether the transit card has its required
// credentials.
func (c *Config) TransitEnabled() bool {
	return c.Transit.StationID != "" && c.Transit.APIKey != ""
}

// CalendarEnabled reports whether a calendar feed is configured.
func (c *Config) CalendarEnabled() bool {
	return c.Calendar.ICSURL != ""
}

// MenuEnabled reports whether a menu page is configured.
func (c *Config) MenuEnabled() bool {
	return c.Menu.URL != ""
}

// ScreenEnabled reports whether the motion-sensor screen service is
// configured.
func (c *Config) ScreenEnabled() bool {
	return c.Screen.GPIOPin > 0
}

// Location resolves the display timezone, falling back to UTC on an
// unknown name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load loads configuration from the given YAML path, then layers
// environment overrides on top.
//
// Behavior:
//   - missing file: create parent directory, write a default config with
//     0600 perms, continue with the defaults
//   - existing file: read YAML, unmarshal, normalize
//   - in both cases: apply .env/environment overrides last
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg = &Config{}
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, uerr
		}
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if serr := Save(path, cfg); serr != nil {
			// Still usable in memory; caller decides whether to care.
			return cfg, serr
		}
	default:
		return nil, err
	}

	cfg.Normalize()
	applyEnv(cfg)
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory as needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".smartmirror-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
