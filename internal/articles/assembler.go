package articles

import "feedreader/internal/domain"

// decorate merges the per-user state onto each article and drops the
// subscription and filter details the pipeline carried along the way.
func decorate(entries []domain.FeedEntry) []DecoratedArticle {
	items := make([]DecoratedArticle, 0, len(entries))
	for _, e := range entries {
		items = append(items, DecoratedArticle{
			Article:       e.Article,
			Read:          e.State.Read,
			Saved:         e.State.Saved,
			AudioProgress: e.State.AudioProgress,
		})
	}
	return items
}
