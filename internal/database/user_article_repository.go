package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UserArticleRepository handles the per-user read/saved/progress flags.
type UserArticleRepository struct {
	db *sqlx.DB
}

// NewUserArticleRepository creates a new user article repository.
func NewUserArticleRepository(db *sqlx.DB) *UserArticleRepository {
	return &UserArticleRepository{db: db}
}

// SetRead marks an article read or unread for a user.
func (r *UserArticleRepository) SetRead(ctx context.Context, userID, articleID string, read bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_articles (user_id, article_id, read)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, article_id) DO UPDATE SET
			read = EXCLUDED.read,
			updated_at = NOW()
	`, userID, articleID, read)

	if err != nil {
		return fmt.Errorf("failed to set read flag: %w", err)
	}
	return nil
}

// SetSaved saves or unsaves an article for a user.
func (r *UserArticleRepository) SetSaved(ctx context.Context, userID, articleID string, saved bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_articles (user_id, article_id, saved)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, article_id) DO UPDATE SET
			saved = EXCLUDED.saved,
			updated_at = NOW()
	`, userID, articleID, saved)

	if err != nil {
		return fmt.Errorf("failed to set saved flag: %w", err)
	}
	return nil
}

// SetAudioProgress stores the playback position for an article's audio.
func (r *UserArticleRepository) SetAudioProgress(ctx context.Context, userID, articleID string, progress float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_articles (user_id, article_id, audio_progress)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, article_id) DO UPDATE SET
			audio_progress = EXCLUDED.audio_progress,
			updated_at = NOW()
	`, userID, articleID, progress)

	if err != nil {
		return fmt.Errorf("failed to set audio progress: %w", err)
	}
	return nil
}
