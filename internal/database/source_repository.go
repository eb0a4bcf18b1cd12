package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"feedreader/internal/domain"
)

// SourceRepository handles database operations for content sources.
type SourceRepository struct {
	db *sqlx.DB
}

// NewSourceRepository creates a new source repository.
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// UpsertSource registers a source by URL, updating its name and refresh
// interval if it already exists, and returns the source ID.
func (r *SourceRepository) UpsertSource(ctx context.Context, url, name string, refreshSeconds int) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sources (url, name, refresh_interval_seconds)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO UPDATE SET
			name = EXCLUDED.name,
			refresh_interval_seconds = EXCLUDED.refresh_interval_seconds,
			updated_at = NOW()
		RETURNING id
	`, url, name, refreshSeconds).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to upsert source: %w", err)
	}
	return id, nil
}

// ListDueForRefresh returns sources whose next fetch time has passed or was
// never set.
func (r *SourceRepository) ListDueForRefresh(ctx context.Context) ([]domain.Source, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, name, COALESCE(site_url, ''), refresh_interval_seconds,
		       last_fetched_at, next_fetch_at, created_at, updated_at
		FROM sources
		WHERE next_fetch_at IS NULL OR next_fetch_at <= NOW()
		ORDER BY next_fetch_at NULLS FIRST
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources due for refresh: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var s domain.Source
		err := rows.Scan(
			&s.ID, &s.URL, &s.Name, &s.SiteURL, &s.RefreshAfter,
			&s.LastFetchedAt, &s.NextFetchAt, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

// MarkFetched records a successful fetch and schedules the next one.
func (r *SourceRepository) MarkFetched(ctx context.Context, sourceID, siteURL string, nextFetch time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sources
		SET site_url = NULLIF($2, ''),
		    last_fetched_at = NOW(),
		    next_fetch_at = $3,
		    updated_at = NOW()
		WHERE id = $1
	`, sourceID, siteURL, nextFetch)

	if err != nil {
		return fmt.Errorf("failed to mark source fetched: %w", err)
	}
	return nil
}

// Reschedule pushes a failing source's next fetch time forward without
// touching its last success.
func (r *SourceRepository) Reschedule(ctx context.Context, sourceID string, nextFetch time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sources
		SET next_fetch_at = $2, updated_at = NOW()
		WHERE id = $1
	`, sourceID, nextFetch)

	if err != nil {
		return fmt.Errorf("failed to reschedule source: %w", err)
	}
	return nil
}
