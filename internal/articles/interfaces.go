package articles

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"feedreader/internal/domain"
)

// ArticleStore is the storage read surface for feed rows and counts.
type ArticleStore interface {
	QueryArticles(ctx context.Context, userID string, p domain.Predicates, limit, offset int) ([]domain.FeedEntry, error)
	CountDistinctArticles(ctx context.Context, userID string, p domain.Predicates) (int, error)
}

// SubscriptionStore exposes the subscription filter configuration.
type SubscriptionStore interface {
	ListFilterEnabled(ctx context.Context, userID string) ([]string, error)
	LoadFilterRules(ctx context.Context, subscriptionIDs []string) (map[string][]domain.FilterRule, error)
}
