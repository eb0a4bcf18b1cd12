package articles

import (
	"context"
	"fmt"
	"log/slog"

	"feedreader/internal/domain"
	"feedreader/internal/filter"
)

const (
	// overFetchFactor and minFetchLimit size the over-fetch window. The
	// heuristic assumes filter rejection rates rarely exceed ~66%; when they
	// do, hasMore and the total degrade gracefully rather than fail.
	overFetchFactor = 3
	minFetchLimit   = 100
)

// filteredStrategy runs when at least one of the user's subscriptions has
// filtering enabled. Rows are over-fetched from storage, rules are applied
// in memory, and the total becomes an approximation bounded by the window.
type filteredStrategy struct {
	articles      ArticleStore
	subscriptions SubscriptionStore
	logger        *slog.Logger
}

func (f filteredStrategy) paginate(ctx context.Context, req pageRequest) (*Page, error) {
	// The cursor counts items the client has already seen after filtering,
	// but any storage offset applies before filtering. Honoring it here
	// would skip or duplicate articles, so it is ignored and only the raw
	// offset is used.
	fetchLimit := req.limit * overFetchFactor
	if fetchLimit < minFetchLimit {
		fetchLimit = minFetchLimit
	}

	entries, err := f.articles.QueryArticles(ctx, req.userID, req.predicates, fetchLimit, req.offset)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	// The rule load depends on which subscriptions appeared in the window,
	// so it cannot run concurrently with the base query.
	var filteredSubs []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.FilterEnabled && !seen[e.SubscriptionID] {
			seen[e.SubscriptionID] = true
			filteredSubs = append(filteredSubs, e.SubscriptionID)
		}
	}

	rules, err := f.subscriptions.LoadFilterRules(ctx, filteredSubs)
	if err != nil {
		return nil, fmt.Errorf("load filter rules: %w", err)
	}

	admitted := make([]domain.FeedEntry, 0, len(entries))
	for _, e := range entries {
		if !e.FilterEnabled {
			admitted = append(admitted, e)
			continue
		}
		if filter.Admit(e.Article, rules[e.SubscriptionID], e.FilterMode) {
			admitted = append(admitted, e)
		}
	}

	hasMore := len(admitted) > req.limit
	page := admitted
	if hasMore {
		page = admitted[:req.limit]
	}

	f.logger.Debug("filtered page assembled",
		"fetched", len(entries),
		"admitted", len(admitted),
		"filtered_subscriptions", len(filteredSubs),
	)

	// Approximate by construction: only what was visible inside the fetch
	// window counts, plus the offset already consumed. Scanning the corpus
	// for an exact total would defeat the windowed fetch.
	return &Page{
		Items:            decorate(page),
		Total:            len(admitted) + req.offset,
		ApproximateTotal: true,
		HasMore:          hasMore,
	}, nil
}
