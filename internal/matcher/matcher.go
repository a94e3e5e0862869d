package matcher

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"keyword-match-service/internal/domain"
)

// staleRetryInterval bounds how long a stale or snapshot-backed set is
// served before the upstream is tried again.
const staleRetryInterval = time.Minute

type cachedSet struct {
	set        domain.KeywordSet
	preprocess *regexp.Regexp
	patterns   []*regexp.Regexp
	origin     domain.SetOrigin
	fetchedAt  time.Time
	expiresAt  time.Time
}

// Matcher answers keyword-match queries from an in-process cache of
// compiled keyword sets, refreshing expired entries from its source.
type Matcher struct {
	mu        sync.Mutex
	cache     map[string]*cachedSet
	source    domain.KeywordSource
	snapshots domain.SnapshotRepository // optional
	audit     domain.AuditRepository    // optional
}

// SetInfo describes one cached keyword set for introspection.
type SetInfo struct {
	CacheKey     string           `json:"cache_key"`
	Origin       domain.SetOrigin `json:"origin"`
	KeywordCount int              `json:"keyword_count"`
	FetchedAt    time.Time        `json:"fetched_at"`
	ExpiresAt    time.Time        `json:"expires_at"`
}

func New(source domain.KeywordSource, snapshots domain.SnapshotRepository, audit domain.AuditRepository) *Matcher {
	return &Matcher{
		cache:     make(map[string]*cachedSet),
		source:    source,
		snapshots: snapshots,
		audit:     audit,
	}
}

// Match strips input with the set's preprocess expression and tests it
// against each keyword pattern. Expired or missing sets are refreshed from
// the source first, falling back to a persisted snapshot and then to the
// stale cache entry when the source is unavailable.
func (m *Matcher) Match(ctx context.Context, input, filter, version string) (*domain.MatchResult, error) {
	start := time.Now()

	m.mu.Lock()
	cs, err := m.lookup(ctx, filter, version)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	stripped := input
	if cs.preprocess != nil {
		stripped = cs.preprocess.ReplaceAllString(input, "")
	}

	matched := false
	for _, re := range cs.patterns {
		if re.MatchString(stripped) {
			matched = true
			break
		}
	}

	result := &domain.MatchResult{
		Matched:   matched,
		Filter:    filter,
		Version:   version,
		Origin:    cs.origin,
		ExpiresAt: cs.expiresAt,
	}

	m.record(ctx, result, time.Since(start))

	return result, nil
}

// Refresh force-loads the keyword set for filter plus optional version,
// bypassing the cached entry's TTL.
func (m *Matcher) Refresh(ctx context.Context, filter, version string) (*SetInfo, error) {
	if filter == "" {
		return nil, domain.ErrMissingFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cs, err := m.refresh(ctx, filter, version)
	if err != nil {
		return nil, err
	}

	info := setInfo(domain.CacheKey(filter, version), cs)
	return &info, nil
}

// Sets reports every cached keyword set.
func (m *Matcher) Sets() []SetInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]SetInfo, 0, len(m.cache))
	for key, cs := range m.cache {
		infos = append(infos, setInfo(key, cs))
	}
	return infos
}

// lookup returns a usable cached set for the key, refreshing when needed.
// Callers must hold m.mu.
func (m *Matcher) lookup(ctx context.Context, filter, version string) (*cachedSet, error) {
	key := domain.CacheKey(filter, version)

	cs := m.cache[key]
	if cs != nil && time.Now().Before(cs.expiresAt) {
		return cs, nil
	}

	fresh, err := m.refresh(ctx, filter, version)
	if err == nil {
		return fresh, nil
	}

	if fallback := m.fallback(ctx, key, cs, err); fallback != nil {
		return fallback, nil
	}

	return nil, err
}

// refresh loads the set from the source, compiles it, caches it, and
// persists a snapshot. Callers must hold m.mu.
func (m *Matcher) refresh(ctx context.Context, filter, version string) (*cachedSet, error) {
	key := domain.CacheKey(filter, version)

	log.WithField("cache_key", key).Debug("loading keyword set")

	set, ttl, err := m.source.Fetch(ctx, filter, version)
	if err != nil {
		return nil, err
	}

	cs, err := compile(*set, domain.OriginUpstream, time.Now(), ttl)
	if err != nil {
		return nil, err
	}
	m.cache[key] = cs

	if m.snapshots != nil {
		snap := &domain.Snapshot{
			CacheKey:  key,
			Filter:    filter,
			Version:   version,
			Set:       *set,
			FetchedAt: cs.fetchedAt,
			ExpiresAt: cs.expiresAt,
		}
		if err := m.snapshots.Upsert(ctx, snap); err != nil {
			log.WithError(err).WithField("cache_key", key).Warn("persist keyword snapshot failed")
		}
	}

	return cs, nil
}

// fallback degrades to a persisted snapshot or the stale cache entry when a
// refresh fails. A crisis matcher should keep answering on stale data
// rather than fail closed. Callers must hold m.mu.
func (m *Matcher) fallback(ctx context.Context, key string, stale *cachedSet, cause error) *cachedSet {
	if m.snapshots != nil {
		snap, err := m.snapshots.GetByKey(ctx, key)
		if err == nil {
			cs, cerr := compile(snap.Set, domain.OriginSnapshot, snap.FetchedAt, staleRetryInterval)
			if cerr == nil {
				log.WithError(cause).WithField("cache_key", key).Warn("upstream refresh failed, serving persisted snapshot")
				m.cache[key] = cs
				return cs
			}
		} else if !errors.Is(err, domain.ErrSnapshotNotFound) {
			log.WithError(err).WithField("cache_key", key).Warn("snapshot lookup failed")
		}
	}

	if stale != nil {
		log.WithError(cause).WithField("cache_key", key).Warn("upstream refresh failed, serving stale keyword set")
		// Cached entries are read outside the lock once handed out, so the
		// stale entry is replaced rather than mutated in place.
		cs := &cachedSet{
			set:        stale.set,
			preprocess: stale.preprocess,
			patterns:   stale.patterns,
			origin:     domain.OriginStale,
			fetchedAt:  stale.fetchedAt,
			expiresAt:  time.Now().Add(staleRetryInterval),
		}
		m.cache[key] = cs
		return cs
	}

	return nil
}

func (m *Matcher) record(ctx context.Context, result *domain.MatchResult, took time.Duration) {
	if m.audit == nil {
		return
	}

	rec := &domain.MatchRecord{
		ID:         uuid.New(),
		CreatedAt:  time.Now(),
		Filter:     result.Filter,
		Version:    result.Version,
		Matched:    result.Matched,
		Origin:     result.Origin,
		DurationMS: took.Milliseconds(),
	}
	if err := m.audit.Record(ctx, rec); err != nil {
		log.WithError(err).Warn("record match audit failed")
	}
}

// compile builds the cached regex forms of a keyword set once, at load
// time, so a bad pattern surfaces as an error here instead of on every
// match.
func compile(set domain.KeywordSet, origin domain.SetOrigin, fetchedAt time.Time, ttl time.Duration) (*cachedSet, error) {
	cs := &cachedSet{
		set:       set,
		origin:    origin,
		fetchedAt: fetchedAt,
		expiresAt: time.Now().Add(ttl),
	}

	if set.Preprocess != "" {
		re, err := regexp.Compile(set.Preprocess)
		if err != nil {
			return nil, fmt.Errorf("%w: preprocess %q", domain.ErrBadKeywordRegex, set.Preprocess)
		}
		cs.preprocess = re
	}

	cs.patterns = make([]*regexp.Regexp, 0, len(set.Keywords))
	for _, pattern := range set.Keywords {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrBadKeywordRegex, pattern)
		}
		cs.patterns = append(cs.patterns, re)
	}

	return cs, nil
}

func setInfo(key string, cs *cachedSet) SetInfo {
	return SetInfo{
		CacheKey:     key,
		Origin:       cs.origin,
		KeywordCount: len(cs.patterns),
		FetchedAt:    cs.fetchedAt,
		ExpiresAt:    cs.expiresAt,
	}
}
