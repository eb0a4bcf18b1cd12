package articles

import "feedreader/internal/domain"

// ListOptions carries the pagination and narrowing parameters of one feed
// request. Cursor is a client-tracked cumulative item count used by
// infinite-scroll clients; it is only meaningful on the unfiltered path.
type ListOptions struct {
	Limit          int
	Offset         int
	Cursor         *int
	CategoryID     *string
	SubscriptionID *string
	Read           *bool
	Saved          *bool
}

func (o ListOptions) predicates() domain.Predicates {
	return domain.Predicates{
		CategoryID:     o.CategoryID,
		SubscriptionID: o.SubscriptionID,
		Read:           o.Read,
		Saved:          o.Saved,
	}
}

// CountOptions narrows the count queries. Read/saved narrowing is what the
// four count variants themselves vary, so it is not accepted here.
type CountOptions struct {
	CategoryID     *string
	SubscriptionID *string
}

// DecoratedArticle is an article with the requesting user's state merged in.
// Which subscription produced the row, and its filter configuration, are
// internal to the pipeline and deliberately absent.
type DecoratedArticle struct {
	domain.Article
	Read          bool
	Saved         bool
	AudioProgress *float64
}

// Page is the normalized result of either pagination strategy.
//
// Total is exact on the direct path. On the filtered path it only reflects
// what was visible inside the fetch window plus the offset already consumed,
// and ApproximateTotal is set so callers can surface that.
type Page struct {
	Items            []DecoratedArticle
	Total            int
	ApproximateTotal bool
	HasMore          bool
}

// Counts holds the four independent distinct-count results.
type Counts struct {
	All    int
	Unread int
	Read   int
	Saved  int
}
