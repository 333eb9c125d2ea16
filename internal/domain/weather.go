package domain

import "errors"

// YourLocationName is the display name used when coordinates are supplied directly
const YourLocationName = "Your Location"

// Lookup failures. Handlers map each one to an HTTP status.
var (
	ErrInvalidRequest      = errors.New("city name or coordinates are required")
	ErrLocationNotFound    = errors.New("city not found")
	ErrUpstreamUnavailable = errors.New("weather upstream unavailable")
)

// LocationQuery is either a city name or a coordinate pair.
// Coordinates win when both are present.
type LocationQuery struct {
	City      string
	Latitude  *float64
	Longitude *float64
}

// HasCoordinates reports whether both latitude and longitude were supplied
func (q LocationQuery) HasCoordinates() bool {
	return q.Latitude != nil && q.Longitude != nil
}

// ResolvedLocation is a place the forecast can be requested for
type ResolvedLocation struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"name"`
}

// CurrentWeather holds current conditions
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
	Time        string  `json:"time"`
}

// HourlyPoint is one hour of the forecast
type HourlyPoint struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed"`
}

// DailyPoint is one day of the forecast
type DailyPoint struct {
	Date        string  `json:"date"`
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	WeatherCode int     `json:"weather_code"`
}

// ForecastResponse is the flat shape returned to the dashboard
type ForecastResponse struct {
	City    string         `json:"city"`
	Current CurrentWeather `json:"current"`
	Hourly  []HourlyPoint  `json:"hourly"`
	Daily   []DailyPoint   `json:"daily"`
}
