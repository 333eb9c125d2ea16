package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/weatherdash/backend/internal/domain"
	"github.com/weatherdash/backend/internal/repository/postgres"
	"github.com/weatherdash/backend/internal/service"
)

type fakeGeocoder struct {
	calls  int
	loc    domain.ResolvedLocation
	err    error
	events *[]string
}

func (f *fakeGeocoder) Search(ctx context.Context, city string) (domain.ResolvedLocation, error) {
	f.calls++
	if f.events != nil {
		*f.events = append(*f.events, "geocode:"+city)
	}
	return f.loc, f.err
}

type fakeForecaster struct {
	calls  int
	last   domain.ResolvedLocation
	err    error
	events *[]string
}

func (f *fakeForecaster) Forecast(ctx context.Context, loc domain.ResolvedLocation) (domain.ForecastResponse, error) {
	f.calls++
	f.last = loc
	if f.events != nil {
		*f.events = append(*f.events, "forecast")
	}
	if f.err != nil {
		return domain.ForecastResponse{}, f.err
	}
	return domain.ForecastResponse{
		City:   loc.DisplayName,
		Hourly: []domain.HourlyPoint{{Time: "2024-05-01T00:00"}, {Time: "2024-05-01T01:00"}},
		Daily:  []domain.DailyPoint{{Date: "2024-05-01"}},
	}, nil
}

// staticForecaster is safe for concurrent lookups
type staticForecaster struct{}

func (staticForecaster) Forecast(ctx context.Context, loc domain.ResolvedLocation) (domain.ForecastResponse, error) {
	return domain.ForecastResponse{City: loc.DisplayName}, nil
}

func ptr(v float64) *float64 { return &v }

func TestWeatherService_CoordinatesSkipGeocoding(t *testing.T) {
	geo := &fakeGeocoder{}
	fc := &fakeForecaster{}
	svc := service.NewWeatherService(geo, fc, postgres.NewMemoryRepository(10))

	got, err := svc.Lookup(context.Background(), domain.LocationQuery{City: "Paris", Latitude: ptr(48.85), Longitude: ptr(2.35)})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	svc.WaitBackground()

	if geo.calls != 0 {
		t.Errorf("expected no geocoding call, got %d", geo.calls)
	}
	if got.City != domain.YourLocationName {
		t.Errorf("City = %q, want %q", got.City, domain.YourLocationName)
	}
	if fc.last.Latitude != 48.85 || fc.last.Longitude != 2.35 {
		t.Errorf("forecast requested for %+v", fc.last)
	}
}

func TestWeatherService_CityGeocodesBeforeForecast(t *testing.T) {
	var events []string
	geo := &fakeGeocoder{loc: domain.ResolvedLocation{Latitude: 51.5, Longitude: -0.12, DisplayName: "London"}, events: &events}
	fc := &fakeForecaster{events: &events}
	svc := service.NewWeatherService(geo, fc, postgres.NewMemoryRepository(10))

	got, err := svc.Lookup(context.Background(), domain.LocationQuery{City: "  london "})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	svc.WaitBackground()

	if got.City != "London" {
		t.Errorf("City = %q, want London", got.City)
	}
	if len(events) != 2 || events[0] != "geocode:london" || events[1] != "forecast" {
		t.Errorf("unexpected call order: %v", events)
	}
	if len(got.Hourly) != 2 || len(got.Daily) != 1 {
		t.Errorf("unexpected lengths: hourly=%d daily=%d", len(got.Hourly), len(got.Daily))
	}
}

func TestWeatherService_Failures(t *testing.T) {
	tests := []struct {
		name          string
		query         domain.LocationQuery
		geoErr        error
		forecastErr   error
		wantErr       error
		wantForecasts int
	}{
		{
			name:    "empty query",
			query:   domain.LocationQuery{},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "blank city",
			query:   domain.LocationQuery{City: "   "},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "latitude out of range",
			query:   domain.LocationQuery{Latitude: ptr(123), Longitude: ptr(0)},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "no geocoding match",
			query:   domain.LocationQuery{City: "Atlantis"},
			geoErr:  domain.ErrLocationNotFound,
			wantErr: domain.ErrLocationNotFound,
		},
		{
			name:    "geocoding transport failure",
			query:   domain.LocationQuery{City: "Atlantis"},
			geoErr:  errors.New("connection refused"),
			wantErr: domain.ErrLocationNotFound,
		},
		{
			name:          "forecast failure",
			query:         domain.LocationQuery{City: "London"},
			forecastErr:   domain.ErrUpstreamUnavailable,
			wantErr:       domain.ErrUpstreamUnavailable,
			wantForecasts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := &fakeGeocoder{loc: domain.ResolvedLocation{DisplayName: "London"}, err: tt.geoErr}
			fc := &fakeForecaster{err: tt.forecastErr}
			svc := service.NewWeatherService(geo, fc, postgres.NewMemoryRepository(10))

			got, err := svc.Lookup(context.Background(), tt.query)
			svc.WaitBackground()

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Lookup() error = %v, want %v", err, tt.wantErr)
			}
			if got.City != "" || got.Hourly != nil {
				t.Errorf("expected empty response on failure, got %+v", got)
			}
			if fc.calls != tt.wantForecasts {
				t.Errorf("forecast calls = %d, want %d", fc.calls, tt.wantForecasts)
			}
		})
	}
}

func TestWeatherService_RecordsLookups(t *testing.T) {
	repo := postgres.NewMemoryRepository(10)
	geo := &fakeGeocoder{err: domain.ErrLocationNotFound}
	svc := service.NewWeatherService(geo, &fakeForecaster{}, repo)
	ctx := context.Background()

	_, _ = svc.LookupParams(ctx, "", "52.52", "13.41")
	_, _ = svc.LookupParams(ctx, "Atlantis", "", "")
	_, _ = svc.LookupParams(ctx, "", "north", "13.41")
	svc.WaitBackground()

	logs, err := svc.RecentLookups(ctx, 10)
	if err != nil {
		t.Fatalf("RecentLookups() error = %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 lookup logs, got %d", len(logs))
	}

	byQuery := map[string]domain.LookupLog{}
	for _, l := range logs {
		byQuery[l.Query] = l
	}

	tests := []struct {
		query   string
		outcome string
		status  int
	}{
		{"lat=52.5&lon=13.4", domain.OutcomeOK, 200},
		{"city=Atlantis", domain.OutcomeLocationNotFound, 404},
		{"lat=?&lon=?", domain.OutcomeInvalidRequest, 400},
	}
	for _, tt := range tests {
		l, ok := byQuery[tt.query]
		if !ok {
			t.Errorf("no lookup log for %q", tt.query)
			continue
		}
		if l.Outcome != tt.outcome || l.Status != tt.status {
			t.Errorf("%s: outcome=%s status=%d, want %s %d", tt.query, l.Outcome, l.Status, tt.outcome, tt.status)
		}
	}

	if ok := byQuery["lat=52.5&lon=13.4"]; ok.City != domain.YourLocationName || ok.Latitude != 52.5 || ok.Longitude != 13.4 {
		t.Errorf("unexpected success record: %+v", ok)
	}
}

func TestWeatherService_CoarsensStoredCoordinates(t *testing.T) {
	repo := postgres.NewMemoryRepository(10)
	svc := service.NewWeatherService(&fakeGeocoder{}, &fakeForecaster{}, repo)
	ctx := context.Background()

	_, _ = svc.LookupParams(ctx, "", "53.349805", "-6.26031")
	_, _ = svc.LookupParams(ctx, "", "95.123456", "-6.26031")
	svc.WaitBackground()

	logs, _ := svc.RecentLookups(ctx, 10)
	if len(logs) != 2 {
		t.Fatalf("expected 2 lookup logs, got %d", len(logs))
	}

	for _, l := range logs {
		if strings.Contains(l.Query, "349805") || strings.Contains(l.Query, "26031") || strings.Contains(l.Query, "123456") {
			t.Errorf("query %q keeps precise coordinates", l.Query)
		}
	}

	byOutcome := map[string]domain.LookupLog{}
	for _, l := range logs {
		byOutcome[l.Outcome] = l
	}
	ok := byOutcome[domain.OutcomeOK]
	if ok.Query != "lat=53.3&lon=-6.3" || ok.Latitude != 53.3 || ok.Longitude != -6.3 {
		t.Errorf("success record = %+v, want coordinates rounded to one decimal", ok)
	}
	if invalid := byOutcome[domain.OutcomeInvalidRequest]; invalid.Query != "lat=?&lon=?" || invalid.Latitude != 0 {
		t.Errorf("invalid record = %+v", invalid)
	}
}

func TestWeatherService_NoRecordingAfterDrain(t *testing.T) {
	repo := postgres.NewMemoryRepository(10)
	svc := service.NewWeatherService(&fakeGeocoder{}, staticForecaster{}, repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.LookupParams(ctx, "", "10", "20")
		}()
	}
	svc.WaitBackground()
	wg.Wait()

	before, _ := svc.RecentLookups(ctx, 100)

	if _, err := svc.LookupParams(ctx, "", "10", "20"); err != nil {
		t.Fatalf("lookup after drain error = %v", err)
	}
	svc.WaitBackground()

	after, _ := svc.RecentLookups(ctx, 100)
	if len(after) != len(before) {
		t.Errorf("records after drain = %d, want %d", len(after), len(before))
	}
}

func TestParseLocationQuery(t *testing.T) {
	tests := []struct {
		name       string
		city       string
		lat, lon   string
		wantErr    bool
		wantCity   string
		wantCoords bool
	}{
		{name: "city", city: "Oslo", wantCity: "Oslo"},
		{name: "trimmed city", city: "  Oslo  ", wantCity: "Oslo"},
		{name: "coordinates", lat: "59.91", lon: "10.75", wantCoords: true},
		{name: "coordinates win over city", city: "Oslo", lat: "59.91", lon: "10.75", wantCoords: true},
		{name: "lone latitude falls back to city", city: "Oslo", lat: "59.91", wantCity: "Oslo"},
		{name: "lone latitude without city", lat: "59.91", wantErr: true},
		{name: "nothing", wantErr: true},
		{name: "non numeric", lat: "abc", lon: "10", wantErr: true},
		{name: "not a number", lat: "NaN", lon: "10", wantErr: true},
		{name: "longitude out of range", lat: "10", lon: "181", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := service.ParseLocationQuery(tt.city, tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocationQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidRequest) {
					t.Errorf("error = %v, want ErrInvalidRequest", err)
				}
				return
			}
			if q.HasCoordinates() != tt.wantCoords {
				t.Errorf("HasCoordinates() = %v, want %v", q.HasCoordinates(), tt.wantCoords)
			}
			if !tt.wantCoords && q.City != tt.wantCity {
				t.Errorf("City = %q, want %q", q.City, tt.wantCity)
			}
		})
	}
}
