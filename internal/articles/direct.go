package articles

import (
	"context"
	"fmt"
)

// directStrategy paginates entirely in storage. It runs when none of the
// user's subscriptions have filtering enabled, so offsets and counts can be
// trusted as-is.
type directStrategy struct {
	articles ArticleStore
}

func (d directStrategy) paginate(ctx context.Context, req pageRequest) (*Page, error) {
	// The cursor is a cumulative item count maintained by infinite-scroll
	// clients; with no in-memory filtering it is numerically equivalent to
	// an offset and takes precedence over one.
	offset := req.offset
	if req.cursor != nil && *req.cursor >= 0 {
		offset = *req.cursor
	}

	// Fetch one row past the page to learn whether more exist without a
	// second range query.
	entries, err := d.articles.QueryArticles(ctx, req.userID, req.predicates, req.limit+1, offset)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	hasMore := len(entries) > req.limit
	if hasMore {
		entries = entries[:req.limit]
	}

	// Joins can multiply rows, so the exact total counts distinct article
	// IDs under the same predicates.
	total, err := d.articles.CountDistinctArticles(ctx, req.userID, req.predicates)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	return &Page{
		Items:   decorate(entries),
		Total:   total,
		HasMore: hasMore,
	}, nil
}
