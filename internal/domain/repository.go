package domain

import (
	"context"
	"time"
)

// KeywordSource fetches the keyword set for a filter plus optional version,
// together with how long the set may be cached.
type KeywordSource interface {
	Fetch(ctx context.Context, filter, version string) (*KeywordSet, time.Duration, error)
}

// SnapshotRepository persists the last known keyword set per cache key.
type SnapshotRepository interface {
	Upsert(ctx context.Context, snap *Snapshot) error
	GetByKey(ctx context.Context, cacheKey string) (*Snapshot, error)
	List(ctx context.Context) ([]*Snapshot, error)
}

// AuditRepository records and reports on served match requests.
type AuditRepository interface {
	Record(ctx context.Context, rec *MatchRecord) error
	List(ctx context.Context, filter AuditFilter) ([]*MatchRecord, int, error)
	Stats(ctx context.Context) (*MatchStats, error)
}
