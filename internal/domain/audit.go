package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchRecord is one audited match request.
type MatchRecord struct {
	ID         uuid.UUID `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Filter     string    `json:"filter"`
	Version    string    `json:"version"`
	Matched    bool      `json:"matched"`
	Origin     SetOrigin `json:"origin"`
	DurationMS int64     `json:"duration_ms"`
}

// AuditFilter selects match records for listing.
type AuditFilter struct {
	Filter  string
	Matched *bool
	Limit   int
	Offset  int
}

// MatchStats is the aggregate over all recorded matches.
type MatchStats struct {
	Total         int64   `json:"total"`
	Matched       int64   `json:"matched"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}
