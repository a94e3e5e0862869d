package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"keyword-match-service/internal/domain"
)

type auditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) domain.AuditRepository {
	return &auditRepo{pool: pool}
}

func (r *auditRepo) Record(ctx context.Context, rec *domain.MatchRecord) error {
	query := `
		INSERT INTO keyword_match_audit
			(id, created_at, filter, version, matched, origin, duration_ms)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.CreatedAt, rec.Filter, rec.Version,
		rec.Matched, string(rec.Origin), rec.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("record match audit: %w", err)
	}
	return nil
}

func (r *auditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.MatchRecord, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Filter != "" {
		conditions = append(conditions, fmt.Sprintf("filter = $%d", argPos))
		args = append(args, filter.Filter)
		argPos++
	}
	if filter.Matched != nil {
		conditions = append(conditions, fmt.Sprintf("matched = $%d", argPos))
		args = append(args, *filter.Matched)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM keyword_match_audit WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count match audit records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, filter, version, matched, origin, duration_ms
		FROM keyword_match_audit
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list match audit records: %w", err)
	}
	defer rows.Close()

	var records []*domain.MatchRecord
	for rows.Next() {
		rec := &domain.MatchRecord{}
		var origin string
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Filter, &rec.Version, &rec.Matched, &origin, &rec.DurationMS); err != nil {
			return nil, 0, fmt.Errorf("scan match audit row: %w", err)
		}
		rec.Origin = domain.SetOrigin(origin)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate match audit rows: %w", err)
	}

	return records, total, nil
}

func (r *auditRepo) Stats(ctx context.Context) (*domain.MatchStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE matched),
			COALESCE(AVG(duration_ms), 0)
		FROM keyword_match_audit
	`

	stats := &domain.MatchStats{}
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Matched, &stats.AvgDurationMS); err != nil {
		return nil, fmt.Errorf("aggregate match stats: %w", err)
	}
	return stats, nil
}
