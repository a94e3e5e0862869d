package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"keyword-match-service/internal/domain"
)

type snapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepository(pool *pgxpool.Pool) domain.SnapshotRepository {
	return &snapshotRepo{pool: pool}
}

func (r *snapshotRepo) Upsert(ctx context.Context, snap *domain.Snapshot) error {
	keywordsJSON, err := json.Marshal(snap.Set.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	query := `
		INSERT INTO keyword_snapshot
			(cache_key, filter, version, keywords, preprocess, fetched_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (cache_key) DO UPDATE SET
			keywords = EXCLUDED.keywords,
			preprocess = EXCLUDED.preprocess,
			fetched_at = EXCLUDED.fetched_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err = r.pool.Exec(ctx, query,
		snap.CacheKey, snap.Filter, snap.Version,
		keywordsJSON, snap.Set.Preprocess, snap.FetchedAt, snap.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert keyword snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) GetByKey(ctx context.Context, cacheKey string) (*domain.Snapshot, error) {
	query := `
		SELECT cache_key, filter, version, keywords, preprocess, fetched_at, expires_at
		FROM keyword_snapshot
		WHERE cache_key = $1
	`

	snap, err := scanSnapshot(r.pool.QueryRow(ctx, query, cacheKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get keyword snapshot: %w", err)
	}
	return snap, nil
}

func (r *snapshotRepo) List(ctx context.Context) ([]*domain.Snapshot, error) {
	query := `
		SELECT cache_key, filter, version, keywords, preprocess, fetched_at, expires_at
		FROM keyword_snapshot
		ORDER BY fetched_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list keyword snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan keyword snapshot row: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keyword snapshot rows: %w", err)
	}

	return snaps, nil
}

func scanSnapshot(row pgx.Row) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	var keywordsJSON []byte

	err := row.Scan(
		&snap.CacheKey, &snap.Filter, &snap.Version,
		&keywordsJSON, &snap.Set.Preprocess, &snap.FetchedAt, &snap.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(keywordsJSON, &snap.Set.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshal keywords: %w", err)
	}

	return snap, nil
}
