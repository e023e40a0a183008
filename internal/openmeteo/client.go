// Package openmeteo fetches current conditions and the short daily
// forecast from the Open-Meteo API. No API key required.
package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// ErrDecode marks a payload that arrived but could not be decoded, so
// callers can distinguish parse failures from transport failures.
var ErrDecode = errors.New("openmeteo: malformed payload")

// DefaultBaseURL is the public forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1"

const requestTimeout = 10 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client queries the forecast endpoint for one coordinate pair.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
	}
}

// Forecast is the subset of the Open-Meteo response the weather card
// renders.
type Forecast struct {
	Current Current `json:"current"`
	Daily   Daily   `json:"daily"`
}

// Current holds the instantaneous conditions.
type Current struct {
	Temperature float64 `json:"temperature_2m"`
	Humidity    int     `json:"relative_humidity_2m"`
	WeatherCode int     `json:"weather_code"`
	WindSpeed   float64 `json:"wind_speed_10m"`
}

// Daily holds parallel per-day series; index 0 is today.
type Daily struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WeatherCode    []int     `json:"weather_code"`
}

// Fetch retrieves the forecast for the given coordinates.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (*Forecast, error) {
	u := fmt.Sprintf(
		"%s/forecast?latitude=%.4f&longitude=%.4f"+
			"&current=temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"+
			"&daily=temperature_2m_max,temperature_2m_min,weather_code"+
			"&timezone=auto",
		c.baseURL, latitude, longitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("openmeteo: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openmeteo: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openmeteo: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openmeteo: read body: %w", err)
	}

	var fc Forecast
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &fc, nil
}
