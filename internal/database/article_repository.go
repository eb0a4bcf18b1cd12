package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"feedreader/internal/domain"
)

// ArticleRepository handles database operations for articles and the joined
// per-user feed rows.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// feedJoins is the shared join clause of the feed query: every article the
// user is subscribed to, with the owning subscription and the user's state.
// The subscription join can multiply rows, which is why counting goes
// through COUNT(DISTINCT a.id).
const feedJoins = `
	FROM articles a
	JOIN sources src ON src.id = a.source_id
	JOIN subscriptions s ON s.source_id = src.id AND s.user_id = $1
	LEFT JOIN user_articles ua ON ua.article_id = a.id AND ua.user_id = $1`

// buildPredicates renders the optional narrowing predicates into WHERE
// conditions, continuing the positional placeholder numbering after args.
func buildPredicates(p domain.Predicates, args []interface{}) (string, []interface{}) {
	var conditions []string

	if p.CategoryID != nil {
		args = append(args, *p.CategoryID)
		conditions = append(conditions, fmt.Sprintf("s.category_id = $%d", len(args)))
	}
	if p.SubscriptionID != nil {
		args = append(args, *p.SubscriptionID)
		conditions = append(conditions, fmt.Sprintf("s.id = $%d", len(args)))
	}
	if p.Read != nil {
		args = append(args, *p.Read)
		conditions = append(conditions, fmt.Sprintf("COALESCE(ua.read, FALSE) = $%d", len(args)))
	}
	if p.Saved != nil {
		args = append(args, *p.Saved)
		conditions = append(conditions, fmt.Sprintf("COALESCE(ua.saved, FALSE) = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// QueryArticles returns one page of the user's feed, newest first. Ties on
// published_at break on id descending so pagination stays reproducible.
func (r *ArticleRepository) QueryArticles(ctx context.Context, userID string, p domain.Predicates, limit, offset int) ([]domain.FeedEntry, error) {
	args := []interface{}{userID}
	where, args := buildPredicates(p, args)

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	query := `
		SELECT a.id, a.source_id, COALESCE(a.guid, ''), COALESCE(a.title, ''),
		       COALESCE(a.description, ''), COALESCE(a.content, ''),
		       COALESCE(a.author, ''), COALESCE(a.link, ''),
		       COALESCE(a.image_url, ''), COALESCE(a.audio_url, ''),
		       a.published_at, a.created_at,
		       s.id, s.filter_enabled, s.filter_mode,
		       COALESCE(ua.read, FALSE), COALESCE(ua.saved, FALSE), ua.audio_progress` +
		feedJoins + where + fmt.Sprintf(`
		ORDER BY a.published_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d`, limitPos, offsetPos)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var entries []domain.FeedEntry
	for rows.Next() {
		var e domain.FeedEntry
		err := rows.Scan(
			&e.Article.ID, &e.Article.SourceID, &e.Article.GUID, &e.Article.Title,
			&e.Article.Description, &e.Article.Content,
			&e.Article.Author, &e.Article.Link,
			&e.Article.ImageURL, &e.Article.AudioURL,
			&e.Article.PublishedAt, &e.Article.CreatedAt,
			&e.SubscriptionID, &e.FilterEnabled, &e.FilterMode,
			&e.State.Read, &e.State.Saved, &e.State.AudioProgress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return entries, nil
}

// CountDistinctArticles returns the exact number of distinct articles the
// predicates select for the user.
func (r *ArticleRepository) CountDistinctArticles(ctx context.Context, userID string, p domain.Predicates) (int, error) {
	args := []interface{}{userID}
	where, args := buildPredicates(p, args)

	query := `SELECT COUNT(DISTINCT a.id)` + feedJoins + where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// UpsertArticle stores a fetched article, updating mutable fields when the
// (source_id, guid) pair already exists.
func (r *ArticleRepository) UpsertArticle(ctx context.Context, a domain.Article) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO articles (
			source_id, guid, title, description, content, author,
			link, image_url, audio_url, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (source_id, guid) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			content = EXCLUDED.content,
			author = EXCLUDED.author,
			link = EXCLUDED.link,
			image_url = EXCLUDED.image_url,
			audio_url = EXCLUDED.audio_url
		RETURNING id
	`, a.SourceID, a.GUID, a.Title, a.Description, a.Content, a.Author,
		a.Link, a.ImageURL, a.AudioURL, a.PublishedAt).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to upsert article: %w", err)
	}
	return id, nil
}
