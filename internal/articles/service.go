// Package articles implements the article retrieval pipeline: per-request
// strategy selection between storage-side pagination and windowed in-memory
// filtering, and assembly of the decorated result page.
package articles

import (
	"context"
	"fmt"
	"log/slog"

	"feedreader/internal/domain"
)

const (
	// DefaultLimit is applied when a request does not specify a page size.
	DefaultLimit = 50
	// MaxLimit caps the page size so the filtered strategy's over-fetch
	// window stays bounded.
	MaxLimit = 100
)

// paginator is the seam between the two pagination strategies. Exactly one
// implementation runs per request; they are never mixed within one request.
type paginator interface {
	paginate(ctx context.Context, req pageRequest) (*Page, error)
}

// pageRequest is the normalized request handed to a strategy.
type pageRequest struct {
	userID     string
	limit      int
	offset     int
	cursor     *int
	predicates domain.Predicates
}

// Service routes list and count requests to the storage layer, applying
// subscription filters in memory where storage cannot express them.
type Service struct {
	articles      ArticleStore
	subscriptions SubscriptionStore
	logger        *slog.Logger
}

// NewService creates the article retrieval service.
func NewService(articles ArticleStore, subscriptions SubscriptionStore, logger *slog.Logger) *Service {
	return &Service{
		articles:      articles,
		subscriptions: subscriptions,
		logger:        logger.With("component", "articles"),
	}
}

// List returns one page of the user's aggregated feed.
//
// The strategy is chosen per request from the user's current subscription
// settings: if no subscription has filtering enabled, pagination and counting
// are done by storage and the total is exact. If at least one does, the whole
// request goes through the filtered strategy, even when none of the returned
// articles belong to a filtered subscription.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) (*Page, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	filterEnabled, err := s.subscriptions.ListFilterEnabled(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list filter-enabled subscriptions: %w", err)
	}

	req := pageRequest{
		userID:     userID,
		limit:      limit,
		offset:     offset,
		cursor:     opts.Cursor,
		predicates: opts.predicates(),
	}

	var strategy paginator
	if len(filterEnabled) == 0 {
		strategy = directStrategy{articles: s.articles}
	} else {
		strategy = filteredStrategy{
			articles:      s.articles,
			subscriptions: s.subscriptions,
			logger:        s.logger,
		}
	}

	s.logger.Debug("paginating feed",
		"user_id", userID,
		"limit", limit,
		"offset", offset,
		"filtered_subscriptions", len(filterEnabled),
	)

	return strategy.paginate(ctx, req)
}
