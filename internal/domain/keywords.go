package domain

import "time"

// KeywordSet is one downloadable set of crisis-keyword patterns. Keywords
// holds regular expressions tested against the input; Preprocess is a
// regular expression whose matches are stripped from the input first.
type KeywordSet struct {
	Keywords   []string `json:"keywords" yaml:"keywords"`
	Preprocess string   `json:"preprocess" yaml:"preprocess"`
}

// SetOrigin records where a cached keyword set came from.
type SetOrigin string

const (
	OriginUpstream SetOrigin = "upstream"
	OriginFile     SetOrigin = "file"
	OriginSnapshot SetOrigin = "snapshot"
	OriginStale    SetOrigin = "stale"
)

// Snapshot is the last known keyword set for a cache key, persisted so the
// matcher can keep answering while the upstream API is unreachable.
type Snapshot struct {
	CacheKey  string     `json:"cache_key"`
	Filter    string     `json:"filter"`
	Version   string     `json:"version"`
	Set       KeywordSet `json:"set"`
	FetchedAt time.Time  `json:"fetched_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CacheKey identifies a cached keyword set. The upstream API treats
// filter plus optional version as the unit of download; an empty version
// is valid and shares the key space with versioned entries.
func CacheKey(filter, version string) string {
	return filter + version
}

// MatchResult is the outcome of matching one input against a keyword set.
type MatchResult struct {
	Matched   bool
	Filter    string
	Version   string
	Origin    SetOrigin
	ExpiresAt time.Time
}
