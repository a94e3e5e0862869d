package dto

import "time"

type MatchRequest struct {
	Input   string `json:"input"`
	Filter  string `json:"filter"`
	Version string `json:"version"`
}

type MatchResponse struct {
	Matched   bool      `json:"matched"`
	Filter    string    `json:"filter"`
	Version   string    `json:"version,omitempty"`
	Origin    string    `json:"origin"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RefreshRequest struct {
	Filter  string `json:"filter"`
	Version string `json:"version"`
}

type SetInfoResponse struct {
	CacheKey     string    `json:"cache_key"`
	Origin       string    `json:"origin"`
	KeywordCount int       `json:"keyword_count"`
	FetchedAt    time.Time `json:"fetched_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type ListSetsResponse struct {
	Items []SetInfoResponse `json:"items"`
	Total int               `json:"total"`
}

type MatchRecordResponse struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Filter     string    `json:"filter"`
	Version    string    `json:"version,omitempty"`
	Matched    bool      `json:"matched"`
	Origin     string    `json:"origin"`
	DurationMS int64     `json:"duration_ms"`
}

type ListAuditResponse struct {
	Items      []MatchRecordResponse `json:"items"`
	Total      int                   `json:"total"`
	PageSize   int                   `json:"page_size"`
	NextOffset int                   `json:"next_offset"`
}

type StatsResponse struct {
	Total         int64   `json:"total"`
	Matched       int64   `json:"matched"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}
