package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/weatherdash/backend/internal/domain"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

const (
	hourlyFields = "temperature_2m,precipitation,weathercode,wind_speed_10m"
	dailyFields  = "temperature_2m_max,temperature_2m_min,weathercode"
)

// ForecastClient fetches forecasts from the Open-Meteo API
type ForecastClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewForecastClient creates a new forecast client
func NewForecastClient(baseURL string, timeout time.Duration) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// openMeteoForecast represents the Open-Meteo forecast API response
type openMeteoForecast struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly *openMeteoHourly `json:"hourly"`
	Daily  *openMeteoDaily  `json:"daily"`
}

type openMeteoHourly struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m"`
	Precipitation []float64 `json:"precipitation"`
	WeatherCode   []int     `json:"weathercode"`
	WindSpeed     []float64 `json:"wind_speed_10m"`
}

type openMeteoDaily struct {
	Time        []string  `json:"time"`
	TempMax     []float64 `json:"temperature_2m_max"`
	TempMin     []float64 `json:"temperature_2m_min"`
	WeatherCode []int     `json:"weathercode"`
}

var errMalformed = errors.New("malformed forecast payload")

// Forecast fetches current, hourly and daily weather for a resolved location.
// Every failure wraps domain.ErrUpstreamUnavailable and no partial data is returned.
func (c *ForecastClient) Forecast(ctx context.Context, loc domain.ResolvedLocation) (domain.ForecastResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.ForecastResponse{}, fmt.Errorf("forecast: failed to create request: %w: %w", err, domain.ErrUpstreamUnavailable)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ForecastResponse{}, fmt.Errorf("forecast: request failed: %w: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ForecastResponse{}, fmt.Errorf("forecast: upstream returned status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var payload openMeteoForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.ForecastResponse{}, fmt.Errorf("forecast: failed to decode response: %w: %w", err, domain.ErrUpstreamUnavailable)
	}

	forecast, err := payload.reshape(loc.DisplayName)
	if err != nil {
		return domain.ForecastResponse{}, fmt.Errorf("forecast: %w: %w", err, domain.ErrUpstreamUnavailable)
	}
	return forecast, nil
}

// reshape zips the parallel upstream arrays into point records
func (p openMeteoForecast) reshape(city string) (domain.ForecastResponse, error) {
	if p.CurrentWeather == nil || p.Hourly == nil || p.Daily == nil {
		return domain.ForecastResponse{}, fmt.Errorf("%w: missing current, hourly or daily block", errMalformed)
	}

	hourly, err := p.Hourly.points()
	if err != nil {
		return domain.ForecastResponse{}, err
	}
	daily, err := p.Daily.points()
	if err != nil {
		return domain.ForecastResponse{}, err
	}

	return domain.ForecastResponse{
		City: city,
		Current: domain.CurrentWeather{
			Temperature: p.CurrentWeather.Temperature,
			WindSpeed:   p.CurrentWeather.WindSpeed,
			WeatherCode: p.CurrentWeather.WeatherCode,
			Time:        p.CurrentWeather.Time,
		},
		Hourly: hourly,
		Daily:  daily,
	}, nil
}

func (h *openMeteoHourly) points() ([]domain.HourlyPoint, error) {
	n := len(h.Time)
	if len(h.Temperature) != n || len(h.Precipitation) != n || len(h.WeatherCode) != n || len(h.WindSpeed) != n {
		return nil, fmt.Errorf("%w: hourly arrays differ in length", errMalformed)
	}

	out := make([]domain.HourlyPoint, n)
	for i := range h.Time {
		out[i] = domain.HourlyPoint{
			Time:          h.Time[i],
			Temperature:   h.Temperature[i],
			Precipitation: h.Precipitation[i],
			WeatherCode:   h.WeatherCode[i],
			WindSpeed:     h.WindSpeed[i],
		}
	}
	return out, nil
}

func (d *openMeteoDaily) points() ([]domain.DailyPoint, error) {
	n := len(d.Time)
	if len(d.TempMax) != n || len(d.TempMin) != n || len(d.WeatherCode) != n {
		return nil, fmt.Errorf("%w: daily arrays differ in length", errMalformed)
	}

	out := make([]domain.DailyPoint, n)
	for i := range d.Time {
		out[i] = domain.DailyPoint{
			Date:        d.Time[i],
			TempMax:     d.TempMax[i],
			TempMin:     d.TempMin[i],
			WeatherCode: d.WeatherCode[i],
		}
	}
	return out, nil
}
