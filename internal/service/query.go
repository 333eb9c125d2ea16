package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/weatherdash/backend/internal/domain"
)

// ParseLocationQuery builds a query from raw request parameters.
// A lat/lon pair takes precedence over city; a lone lat or lon is ignored.
func ParseLocationQuery(city, lat, lon string) (domain.LocationQuery, error) {
	lat = strings.TrimSpace(lat)
	lon = strings.TrimSpace(lon)

	if lat != "" && lon != "" {
		latitude, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return domain.LocationQuery{}, fmt.Errorf("query: invalid lat %q: %w", lat, domain.ErrInvalidRequest)
		}
		longitude, err := strconv.ParseFloat(lon, 64)
		if err != nil {
			return domain.LocationQuery{}, fmt.Errorf("query: invalid lon %q: %w", lon, domain.ErrInvalidRequest)
		}
		q := domain.LocationQuery{Latitude: &latitude, Longitude: &longitude}
		return q, ValidateQuery(q)
	}

	q := domain.LocationQuery{City: strings.TrimSpace(city)}
	return q, ValidateQuery(q)
}

// ValidateQuery checks that exactly one usable form is present
func ValidateQuery(q domain.LocationQuery) error {
	if q.HasCoordinates() {
		lat, lon := *q.Latitude, *q.Longitude
		if !validCoordinate(lat, 90) || !validCoordinate(lon, 180) {
			return fmt.Errorf("query: coordinates out of range (%v, %v): %w", lat, lon, domain.ErrInvalidRequest)
		}
		return nil
	}
	if strings.TrimSpace(q.City) == "" {
		return fmt.Errorf("query: %w", domain.ErrInvalidRequest)
	}
	return nil
}

func validCoordinate(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}
