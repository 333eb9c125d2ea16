package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/weatherdash/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS lookup_logs (
		id          UUID PRIMARY KEY,
		query       TEXT NOT NULL,
		latitude    DOUBLE PRECISION NOT NULL,
		longitude   DOUBLE PRECISION NOT NULL,
		city        TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		status      INTEGER NOT NULL,
		duration_ms BIGINT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)
`

// PostgresRepository implements domain.LookupRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the lookup_logs table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveLookup persists a lookup record to PostgreSQL
func (r *PostgresRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	query := `
		INSERT INTO lookup_logs (
			id, query, latitude, longitude, city, outcome, status, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Query, entry.Latitude, entry.Longitude, entry.City,
		entry.Outcome, entry.Status, entry.DurationMS, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save lookup log: %w", err)
	}

	return nil
}

// RecentLookups retrieves the newest lookup records from PostgreSQL
func (r *PostgresRepository) RecentLookups(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	query := `
		SELECT id, query, latitude, longitude, city, outcome, status, duration_ms, created_at
		FROM lookup_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query lookup logs: %w", err)
	}
	defer rows.Close()

	results := make([]domain.LookupLog, 0, max(limit, 0))
	for rows.Next() {
		var l domain.LookupLog
		err := rows.Scan(
			&l.ID, &l.Query, &l.Latitude, &l.Longitude, &l.City,
			&l.Outcome, &l.Status, &l.DurationMS, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lookup row: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate lookup rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
