// Package weather is a thin client for the open-meteo forecast API.
//
// Like the news client, it proxies the upstream payload verbatim — the
// frontend already knows how to render open-meteo's current-conditions shape.
// open-meteo needs no API key.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production open-meteo endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1"

const requestTimeout = 10 * time.Second

// Client calls the open-meteo upstream.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client for the production endpoint.
func New() *Client {
	return NewWithBaseURL(DefaultBaseURL)
}

// NewWithBaseURL creates a Client against an arbitrary base URL, for tests.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
	}
}

// Current fetches current conditions for a coordinate pair: temperature,
// relative humidity, and weather code, in Fahrenheit. The field set matches
// what the frontend's weather widget renders.
func (c *Client) Current(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code")
	params.Set("temperature_unit", "fahrenheit")

	reqURL := c.baseURL + "/forecast?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: calling forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: forecast returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("weather: reading forecast response: %w", err)
	}

	return json.RawMessage(body), nil
}
