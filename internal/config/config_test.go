package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Stockholm", cfg.Timezone)
	assert.Equal(t, "there", cfg.UserName)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timezone: Europe/Berlin
user_name: Alice
transit:
  station_id: "740098000"
  api_key: secret
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "Alice", cfg.UserName)
	assert.True(t, cfg.TransitEnabled())
	// Unset numeric fields are filled from defaults.
	assert.Equal(t, 60, cfg.Transit.DelayThresholdSec)
	assert.Equal(t, 6, cfg.Transit.MaxDepartures)
	assert.Equal(t, 3, cfg.Calendar.MaxEvents)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	t.Setenv("MIRROR_TIMEZONE", "Europe/Helsinki")
	t.Setenv("DEFAULT_USER_NAME", "Bob")
	t.Setenv("TRANSPORT_STATION_ID", "740098000")
	t.Setenv("TRANSPORT_API_KEY", "secret")
	t.Setenv("TRANSPORT_DELAY_THRESHOLD", "120")
	t.Setenv("WEATHER_LATITUDE", "59.3293")
	t.Setenv("PIR_GPIO_PIN", "23")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Helsinki", cfg.Timezone)
	assert.Equal(t, "Bob", cfg.UserName)
	assert.Equal(t, "740098000", cfg.Transit.StationID)
	assert.Equal(t, 120, cfg.Transit.DelayThresholdSec)
	assert.InDelta(t, 59.3293, cfg.Weather.Latitude, 1e-9)
	assert.True(t, cfg.TransitEnabled())
	assert.True(t, cfg.ScreenEnabled())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.UserName = "Carol"
	cfg.Calendar.ICSURL = "https://example.com/cal.ics"
	cfg.Cards = map[string]CardOverride{
		"Clock": {Position: "top_left", IntervalSec: 5},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Carol", loaded.UserName)
	assert.Equal(t, "https://example.com/cal.ics", loaded.Calendar.ICSURL)
	assert.Equal(t, "top_left", loaded.Cards["Clock"].Position)
	assert.Equal(t, 5, loaded.Cards["Clock"].IntervalSec)
}

func TestEnablementHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.TransitEnabled(), "needs both station and key")
	assert.False(t, cfg.CalendarEnabled())
	assert.False(t, cfg.MenuEnabled())
	assert.False(t, cfg.ScreenEnabled())

	cfg.Transit.StationID = "740098000"
	assert.False(t, cfg.TransitEnabled(), "station alone is not enough")
	cfg.Transit.APIKey = "secret"
	assert.True(t, cfg.TransitEnabled())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Neverland/Nowhere"
	assert.Equal(t, "UTC", cfg.Location().String())
}
