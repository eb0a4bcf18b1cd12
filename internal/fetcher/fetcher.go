// Package fetcher pulls feeds from their sources and stores the resulting
// articles. Filtering never happens here: articles are stored unfiltered and
// subscription filters apply at read time.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"feedreader/internal/domain"
)

// ArticleWriter stores fetched articles.
type ArticleWriter interface {
	UpsertArticle(ctx context.Context, article domain.Article) (string, error)
}

// SourceStore updates source fetch bookkeeping.
type SourceStore interface {
	MarkFetched(ctx context.Context, sourceID, siteURL string, nextFetch time.Time) error
	Reschedule(ctx context.Context, sourceID string, nextFetch time.Time) error
}

// Fetcher downloads, parses and stores one source's feed at a time.
type Fetcher struct {
	articles        ArticleWriter
	sources         SourceStore
	parser          *gofeed.Parser
	refreshInterval time.Duration
	logger          *slog.Logger
}

// New creates a fetcher. refreshInterval is the default time between fetches
// of the same source.
func New(articles ArticleWriter, sources SourceStore, userAgent string, refreshInterval time.Duration, logger *slog.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &Fetcher{
		articles:        articles,
		sources:         sources,
		parser:          parser,
		refreshInterval: refreshInterval,
		logger:          logger.With("component", "fetcher"),
	}
}

// Process fetches one source and upserts its articles. A failing source is
// rescheduled for the next interval so one broken feed cannot wedge the
// scheduler.
func (f *Fetcher) Process(ctx context.Context, source domain.Source) error {
	interval := f.refreshInterval
	if source.RefreshAfter > 0 {
		interval = time.Duration(source.RefreshAfter) * time.Second
	}

	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		if rerr := f.sources.Reschedule(ctx, source.ID, time.Now().Add(interval)); rerr != nil {
			f.logger.Error("failed to reschedule source", "source", source.Name, "error", rerr)
		}
		return fmt.Errorf("failed to fetch feed %s: %w", source.URL, err)
	}

	stored := 0
	for _, item := range feed.Items {
		article := normalizeItem(source.ID, item)
		if article.GUID == "" {
			f.logger.Warn("skipping item without guid or link", "source", source.Name)
			continue
		}
		if _, err := f.articles.UpsertArticle(ctx, article); err != nil {
			return fmt.Errorf("failed to store article %q: %w", article.Title, err)
		}
		stored++
	}

	if err := f.sources.MarkFetched(ctx, source.ID, feed.Link, time.Now().Add(interval)); err != nil {
		return fmt.Errorf("failed to mark source fetched: %w", err)
	}

	f.logger.Info("source processed", "source", source.Name, "items", len(feed.Items), "stored", stored)
	return nil
}

// normalizeItem maps one parsed feed item onto an article record.
func normalizeItem(sourceID string, item *gofeed.Item) domain.Article {
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}

	var author string
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = item.Authors[0].Name
	} else if item.Author != nil {
		author = item.Author.Name
	}

	publishedAt := time.Now()
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	}

	var imageURL string
	if item.Image != nil {
		imageURL = item.Image.URL
	}

	var audioURL string
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "audio/") {
			audioURL = enc.URL
			break
		}
	}

	return domain.Article{
		SourceID:    sourceID,
		GUID:        guid,
		Title:       item.Title,
		Description: item.Description,
		Content:     item.Content,
		Author:      author,
		Link:        item.Link,
		ImageURL:    imageURL,
		AudioURL:    audioURL,
		PublishedAt: publishedAt,
	}
}
