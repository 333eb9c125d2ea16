package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/weatherdash/backend/internal/domain"
	"github.com/weatherdash/backend/pkg/utils"
)

// WeatherService resolves a location and fetches its forecast
type WeatherService struct {
	geocoder   Geocoder
	forecaster Forecaster
	repo       LookupRepository

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown

	bgMu     sync.RWMutex
	draining bool
}

// storedCoordinatePlaces rounds logged coordinates to about 11 km
const storedCoordinatePlaces = 1

// NewWeatherService creates a new weather service
func NewWeatherService(geocoder Geocoder, forecaster Forecaster, repo LookupRepository) *WeatherService {
	return &WeatherService{
		geocoder:   geocoder,
		forecaster: forecaster,
		repo:       repo,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes. Lookups that finish
// afterwards are no longer recorded.
func (s *WeatherService) WaitBackground() {
	s.bgMu.Lock()
	s.draining = true
	s.bgMu.Unlock()

	s.wgBg.Wait()
}

// Lookup runs validate -> geocode (city only) -> forecast.
// The forecast call never starts before geocoding has completed.
func (s *WeatherService) Lookup(ctx context.Context, q domain.LocationQuery) (domain.ForecastResponse, error) {
	started := time.Now()
	query := describeQuery(q)

	loc, err := s.resolve(ctx, q)
	if err != nil {
		s.record(query, loc, started, err)
		return domain.ForecastResponse{}, err
	}

	forecast, err := s.forecaster.Forecast(ctx, loc)
	if err != nil {
		log.Printf("Weather API error for %q: %v", loc.DisplayName, err)
		s.record(query, loc, started, err)
		return domain.ForecastResponse{}, err
	}

	s.record(query, loc, started, nil)
	return forecast, nil
}

// LookupParams parses raw request parameters and runs Lookup.
// Unparseable parameters are recorded as invalid requests.
func (s *WeatherService) LookupParams(ctx context.Context, city, lat, lon string) (domain.ForecastResponse, error) {
	q, err := ParseLocationQuery(city, lat, lon)
	if err != nil {
		s.record(rawQuery(city, lat, lon), domain.ResolvedLocation{}, time.Now(), err)
		return domain.ForecastResponse{}, err
	}
	return s.Lookup(ctx, q)
}

// resolve turns a query into coordinates, geocoding only when no coordinates were given
func (s *WeatherService) resolve(ctx context.Context, q domain.LocationQuery) (domain.ResolvedLocation, error) {
	if err := ValidateQuery(q); err != nil {
		return domain.ResolvedLocation{}, err
	}

	if q.HasCoordinates() {
		return domain.ResolvedLocation{
			Latitude:    *q.Latitude,
			Longitude:   *q.Longitude,
			DisplayName: domain.YourLocationName,
		}, nil
	}

	loc, err := s.geocoder.Search(ctx, strings.TrimSpace(q.City))
	if err != nil {
		log.Printf("Geocoding error: %v", err)
		if !errors.Is(err, domain.ErrLocationNotFound) {
			err = errors.Join(err, domain.ErrLocationNotFound)
		}
		return domain.ResolvedLocation{}, err
	}
	return loc, nil
}

// RecentLookups returns the newest lookup log records
func (s *WeatherService) RecentLookups(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	return s.repo.RecentLookups(ctx, limit)
}

// Health checks the lookup log storage
func (s *WeatherService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// record persists the lookup outcome asynchronously (tracked for graceful shutdown)
func (s *WeatherService) record(query string, loc domain.ResolvedLocation, started time.Time, err error) {
	if s.repo == nil {
		return
	}

	outcome, status := Classify(err)
	entry := domain.LookupLog{
		ID:         uuid.New(),
		Query:      query,
		Latitude:   utils.RoundTo(loc.Latitude, storedCoordinatePlaces),
		Longitude:  utils.RoundTo(loc.Longitude, storedCoordinatePlaces),
		City:       loc.DisplayName,
		Outcome:    outcome,
		Status:     status,
		DurationMS: time.Since(started).Milliseconds(),
		CreatedAt:  started.UTC(),
	}

	s.bgMu.RLock()
	defer s.bgMu.RUnlock()
	if s.draining {
		log.Printf("Lookup log closed, dropping record for %q", query)
		return
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := s.repo.SaveLookup(bgCtx, entry); saveErr != nil {
			log.Printf("Failed to save lookup log: %v", saveErr)
		}
	}()
}

// Classify maps a lookup error to its outcome label and HTTP status
func Classify(err error) (string, int) {
	switch {
	case err == nil:
		return domain.OutcomeOK, http.StatusOK
	case errors.Is(err, domain.ErrInvalidRequest):
		return domain.OutcomeInvalidRequest, http.StatusBadRequest
	case errors.Is(err, domain.ErrLocationNotFound):
		return domain.OutcomeLocationNotFound, http.StatusNotFound
	default:
		return domain.OutcomeUpstreamUnavailable, http.StatusInternalServerError
	}
}

func describeQuery(q domain.LocationQuery) string {
	if q.HasCoordinates() {
		lat := utils.RoundTo(*q.Latitude, storedCoordinatePlaces)
		lon := utils.RoundTo(*q.Longitude, storedCoordinatePlaces)
		return "lat=" + utils.FormatNumber(lat) + "&lon=" + utils.FormatNumber(lon)
	}
	return "city=" + strings.TrimSpace(q.City)
}

// rawQuery describes unusable parameters; coordinate values are never kept
func rawQuery(city, lat, lon string) string {
	if lat != "" || lon != "" {
		return "lat=?&lon=?"
	}
	return "city=" + city
}
