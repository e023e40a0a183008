package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/card"
	"smartmirror/internal/openmeteo"
)

var weatherNowStyle = lipgloss.NewStyle().Bold(true)

// wmoIcons maps WMO weather codes to display glyphs.
var wmoIcons = map[int]string{
	0:  "☀️",
	1:  "🌤️",
	2:  "⛅",
	3:  "☁️",
	45: "🌫️",
	48: "🌫️",
	51: "🌦️",
	53: "🌦️",
	55: "🌧️",
	61: "🌧️",
	63: "🌧️",
	65: "🌧️",
	71: "🌨️",
	73: "🌨️",
	75: "🌨️",
	77: "❄️",
	80: "🌦️",
	81: "🌧️",
	82: "⛈️",
	85: "🌨️",
	86: "🌨️",
	95: "⛈️",
	96: "⛈️",
	99: "⛈️",
}

func weatherIcon(code int) string {
	if icon, ok := wmoIcons[code]; ok {
		return icon
	}
	return "🌡️"
}

// Weather shows current conditions plus a three-day forecast for a fixed
// coordinate pair.
type Weather struct {
	card.Base

	client             *openmeteo.Client
	latitude, longitude float64

	mu       sync.Mutex
	forecast *openmeteo.Forecast
	errMsg   string
}

// DefaultWeatherConfig places the weather card bottom left.
func DefaultWeatherConfig() card.Config {
	return card.NewConfig("Weather", card.BottomLeft, 5*time.Minute,
		card.WithBorderColor("blue"),
	)
}

func NewWeather(cfg card.Config, client *openmeteo.Client, latitude, longitude float64) *Weather {
	return &Weather{
		Base:      card.NewBase(cfg),
		client:    client,
		latitude:  latitude,
		longitude: longitude,
	}
}

func (w *Weather) Refresh(ctx context.Context) error {
	fc, err := w.client.Fetch(ctx, w.latitude, w.longitude)
	if err != nil {
		kind := card.KindFetch
		if errors.Is(err, openmeteo.ErrDecode) {
			kind = card.KindParse
		}
		w.mu.Lock()
		w.errMsg = errText(err)
		w.mu.Unlock()
		return card.WrapErr(kind, err)
	}

	w.mu.Lock()
	w.forecast = fc
	w.errMsg = ""
	w.mu.Unlock()
	return nil
}

func (w *Weather) View(width int) string {
	w.mu.Lock()
	fc := w.forecast
	errMsg := w.errMsg
	w.mu.Unlock()

	if errMsg != "" {
		return errMsg
	}
	if fc == nil {
		return "Loading weather data..."
	}

	var lines []string
	cur := fc.Current
	lines = append(lines,
		weatherNowStyle.Render(fmt.Sprintf("%s  Now: %.1f°C", weatherIcon(cur.WeatherCode), cur.Temperature)),
		"",
		fmt.Sprintf("💨 Wind: %.0f km/h", cur.WindSpeed),
		fmt.Sprintf("💧 Humidity: %d%%", cur.Humidity),
	)

	daily := fc.Daily
	if len(daily.Time) >= 2 {
		lines = append(lines, "", "Forecast:")
		for i := 1; i < len(daily.Time) && i < 4; i++ {
			if i >= len(daily.TemperatureMax) || i >= len(daily.TemperatureMin) || i >= len(daily.WeatherCode) {
				break
			}
			day, err := time.Parse("2006-01-02", daily.Time[i])
			if err != nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s: %s %.0f°/%.0f°C",
				day.Format("Mon"),
				weatherIcon(daily.WeatherCode[i]),
				daily.TemperatureMax[i],
				daily.TemperatureMin[i],
			))
		}
	}

	return strings.Join(lines, "\n")
}
