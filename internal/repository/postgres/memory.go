package postgres

import (
	"context"
	"sync"

	"github.com/weatherdash/backend/internal/domain"
)

// MemoryRepository implements domain.LookupRepository when no database is reachable.
// It keeps the last `size` records in a ring.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []domain.LookupLog
	next    int
	full    bool
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository(size int) *MemoryRepository {
	if size < 1 {
		size = 1
	}
	return &MemoryRepository{entries: make([]domain.LookupLog, size)}
}

// SaveLookup stores the record, overwriting the oldest once full
func (r *MemoryRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// RecentLookups returns up to limit records, newest first
func (r *MemoryRepository) RecentLookups(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.next
	if r.full {
		count = len(r.entries)
	}
	limit = max(0, min(limit, count))

	results := make([]domain.LookupLog, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		results = append(results, r.entries[idx])
	}
	return results, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
