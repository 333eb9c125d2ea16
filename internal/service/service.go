package service

import (
	"context"

	"github.com/weatherdash/backend/internal/domain"
)

// LookupRepository is re-exported from domain for convenience
type LookupRepository = domain.LookupRepository

// Geocoder resolves a city name to a location
type Geocoder interface {
	Search(ctx context.Context, city string) (domain.ResolvedLocation, error)
}

// Forecaster fetches the forecast for a resolved location
type Forecaster interface {
	Forecast(ctx context.Context, loc domain.ResolvedLocation) (domain.ForecastResponse, error)
}
