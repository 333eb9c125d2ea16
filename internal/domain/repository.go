package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lookup outcomes recorded in the lookup log
const (
	OutcomeOK                  = "ok"
	OutcomeInvalidRequest      = "invalid_request"
	OutcomeLocationNotFound    = "location_not_found"
	OutcomeUpstreamUnavailable = "upstream_unavailable"
)

// LookupLog is a diagnostic record of one proxy lookup.
// It never carries forecast data.
type LookupLog struct {
	ID         uuid.UUID `json:"id"`
	Query      string    `json:"query"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	City       string    `json:"city"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// LookupRepository defines the interface for lookup log persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type LookupRepository interface {
	// SaveLookup persists a lookup record
	SaveLookup(ctx context.Context, entry LookupLog) error

	// RecentLookups returns the newest records first
	RecentLookups(ctx context.Context, limit int) ([]LookupLog, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
