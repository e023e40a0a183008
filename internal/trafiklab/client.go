// Package trafiklab talks to the Trafiklab realtime API and normalizes
// its departure feed into sorted, display-ready records: cancellations
// dropped, per-field timestamp parsing that never fails a whole record,
// and a total ordering even when a record carries no usable time at all.
package trafiklab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"smartmirror/internal/model"
)

// DefaultBaseURL is the production endpoint.
const DefaultBaseURL = "https://realtime-api.trafiklab.se/v1"

const requestTimeout = 10 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrDecode marks a payload that arrived but could not be decoded, so
// callers can distinguish parse failures from transport failures.
var ErrDecode = errors.New("trafiklab: malformed payload")

// Client queries departures and stop lookups for one API key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewClient builds a Client for the production API.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		now:        time.Now,
	}
}

// departuresResponse mirrors the realtime departures payload. Only the
// fields the card needs are mapped.
type departuresResponse struct {
	Departures []DepartureEntry `json:"departures"`
}

// DepartureEntry is one raw feed entry.
type DepartureEntry struct {
	Canceled  bool   `json:"canceled"`
	Realtime  string `json:"realtime"`
	Scheduled string `json:"scheduled"`
	Delay     int    `json:"delay"`
	Route     Route  `json:"route"`
}

// Route describes the line serving a departure.
type Route struct {
	Designation   string `json:"designation"`
	Name          string `json:"name"`
	Direction     string `json:"direction"`
	TransportMode string `json:"transport_mode"`
}

// StopGroup is one match from the stop lookup endpoint.
type StopGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type stopsResponse struct {
	StopGroups []StopGroup `json:"stop_groups"`
}

// Departures fetches and normalizes upcoming departures for a station.
// The returned slice is sorted and already filtered; callers only bound
// the display length.
func (c *Client) Departures(ctx context.Context, stationID string) ([]model.Departure, error) {
	if stationID == "" {
		return nil, errors.New("trafiklab: station ID is empty")
	}

	body, err := c.get(ctx, "/departures/"+url.PathEscape(stationID))
	if err != nil {
		return nil, err
	}

	var payload departuresResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return Normalize(payload.Departures, c.now()), nil
}

// LookupStation resolves candidate station IDs by name. The station ID of
// the desired match goes into the transit card configuration.
func (c *Client) LookupStation(ctx context.Context, name string) ([]StopGroup, error) {
	if name == "" {
		return nil, errors.New("trafiklab: station name is empty")
	}

	body, err := c.get(ctx, "/stops/name/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	var payload stopsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return payload.StopGroups, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := c.baseURL + path + "?key=" + url.QueryEscape(c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("trafiklab: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trafiklab: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trafiklab: %s: unexpected status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("trafiklab: read body: %w", err)
	}
	return body, nil
}
