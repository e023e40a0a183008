package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// applyEnv layers environment variables over cfg. A .env file in the
// working directory is honored first (ignored when absent). Credentials
// live here rather than in the YAML file so the file can be committed.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MIRROR_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("DEFAULT_USER_NAME"); v != "" {
		cfg.UserName = v
	}

	if v, ok := envFloat("WEATHER_LATITUDE"); ok {
		cfg.Weather.Latitude = v
	}
	if v, ok := envFloat("WEATHER_LONGITUDE"); ok {
		cfg.Weather.Longitude = v
	}

	if v := os.Getenv("TRANSPORT_STATION_ID"); v != "" {
		cfg.Transit.StationID = v
	}
	if v := os.Getenv("TRANSPORT_API_KEY"); v != "" {
		cfg.Transit.APIKey = v
	}
	if v, ok := envInt("TRANSPORT_DELAY_THRESHOLD"); ok {
		cfg.Transit.DelayThresholdSec = v
	}
	if v, ok := envInt("TRANSPORT_MAX_DEPARTURES"); ok {
		cfg.Transit.MaxDepartures = v
	}

	if v := os.Getenv("CALENDAR_ICS_URL"); v != "" {
		cfg.Calendar.ICSURL = v
	}
	if v, ok := envInt("CALENDAR_MAX_EVENTS"); ok {
		cfg.Calendar.MaxEvents = v
	}

	if v := os.Getenv("MENU_URL"); v != "" {
		cfg.Menu.URL = v
	}
	if v := os.Getenv("MENU_SELECTOR"); v != "" {
		cfg.Menu.Selector = v
	}

	if v, ok := envInt("PIR_GPIO_PIN"); ok {
		cfg.Screen.GPIOPin = v
	}
	if v := os.Getenv("SCREEN_OUTPUT"); v != "" {
		cfg.Screen.Output = v
	}
	if v, ok := envInt("SCREEN_TIMEOUT"); ok {
		cfg.Screen.TimeoutSec = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
