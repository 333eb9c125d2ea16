package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/weatherdash/backend/internal/domain"
)

// DefaultGeocodingURL is the Open-Meteo geocoding search endpoint
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient resolves city names through the Open-Meteo geocoding API
type GeocodingClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocodingClient creates a new geocoding client
func NewGeocodingClient(baseURL string, timeout time.Duration) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &GeocodingClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// geocodingResponse represents the Open-Meteo geocoding API response.
// "results" is omitted entirely when nothing matches.
type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
	} `json:"results"`
}

// Search returns the best match for a city name.
// No match and every transport or decode failure yield domain.ErrLocationNotFound.
func (c *GeocodingClient) Search(ctx context.Context, city string) (domain.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("geocoding: failed to create request: %w: %w", err, domain.ErrLocationNotFound)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("geocoding: request failed: %w: %w", err, domain.ErrLocationNotFound)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ResolvedLocation{}, fmt.Errorf("geocoding: upstream returned status %d: %w", resp.StatusCode, domain.ErrLocationNotFound)
	}

	var geoResp geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("geocoding: failed to decode response: %w: %w", err, domain.ErrLocationNotFound)
	}

	if len(geoResp.Results) == 0 {
		return domain.ResolvedLocation{}, fmt.Errorf("geocoding: no match for %q: %w", city, domain.ErrLocationNotFound)
	}

	first := geoResp.Results[0]
	return domain.ResolvedLocation{
		Latitude:    first.Latitude,
		Longitude:   first.Longitude,
		DisplayName: first.Name,
	}, nil
}
