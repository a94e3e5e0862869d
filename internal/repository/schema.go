package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS keyword_snapshot (
	cache_key   TEXT PRIMARY KEY,
	filter      TEXT NOT NULL,
	version     TEXT NOT NULL DEFAULT '',
	keywords    JSONB NOT NULL,
	preprocess  TEXT NOT NULL DEFAULT '',
	fetched_at  TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS keyword_match_audit (
	id          UUID PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	filter      TEXT NOT NULL,
	version     TEXT NOT NULL DEFAULT '',
	matched     BOOLEAN NOT NULL,
	origin      TEXT NOT NULL,
	duration_ms BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS keyword_match_audit_created_at_idx
	ON keyword_match_audit (created_at DESC);
`

// EnsureSchema creates the service's tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
