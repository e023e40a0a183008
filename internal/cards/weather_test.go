package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartmirror/internal/openmeteo"
)

func TestWeatherIcon(t *testing.T) {
	assert.Equal(t, "☀️", weatherIcon(0))
	assert.Equal(t, "🌧️", weatherIcon(61))
	assert.Equal(t, "⛈️", weatherIcon(95))
	assert.Equal(t, "🌡️", weatherIcon(42), "unknown code falls back")
}

func TestWeatherViewBeforeFirstRefresh(t *testing.T) {
	w := NewWeather(DefaultWeatherConfig(), nil, 59.3293, 18.0686)
	assert.Equal(t, "Loading weather data...", w.View(40))
}

func TestWeatherView(t *testing.T) {
	w := NewWeather(DefaultWeatherConfig(), nil, 59.3293, 18.0686)
	w.forecast = &openmeteo.Forecast{
		Current: openmeteo.Current{
			Temperature: 18.3,
			Humidity:    62,
			WeatherCode: 3,
			WindSpeed:   12.5,
		},
		Daily: openmeteo.Daily{
			Time:           []string{"2026-08-31", "2026-09-01", "2026-09-02"},
			TemperatureMax: []float64{21.0, 19.5, 17.2},
			TemperatureMin: []float64{12.1, 11.0, 10.4},
			WeatherCode:    []int{3, 61, 0},
		},
	}

	view := w.View(40)
	assert.Contains(t, view, "Now: 18.3°C")
	assert.Contains(t, view, "Wind: 12 km/h")
	assert.Contains(t, view, "Humidity: 62%")
	assert.Contains(t, view, "Forecast:")
	// Tomorrow and the day after; today is not repeated in the forecast.
	assert.Contains(t, view, "Tue: 🌧️ 20°/11°C")
	assert.Contains(t, view, "Wed: ☀️ 17°/10°C")
}
