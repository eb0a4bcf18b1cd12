package articles

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"feedreader/internal/domain"
)

// Counts returns the all/unread/read/saved totals for the user's feed under
// the given narrowing. The four distinct-count queries are independent and
// run concurrently. Subscription filters do not apply here; counts reuse the
// base-query predicate machinery only.
func (s *Service) Counts(ctx context.Context, userID string, opts CountOptions) (*Counts, error) {
	base := domain.Predicates{
		CategoryID:     opts.CategoryID,
		SubscriptionID: opts.SubscriptionID,
	}
	withRead := func(v bool) domain.Predicates {
		p := base
		p.Read = &v
		return p
	}
	withSaved := func(v bool) domain.Predicates {
		p := base
		p.Saved = &v
		return p
	}

	var counts Counts
	variants := []struct {
		name string
		p    domain.Predicates
		dest *int
	}{
		{"all", base, &counts.All},
		{"unread", withRead(false), &counts.Unread},
		{"read", withRead(true), &counts.Read},
		{"saved", withSaved(true), &counts.Saved},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, v := range variants {
		g.Go(func() error {
			n, err := s.articles.CountDistinctArticles(gctx, userID, v.p)
			if err != nil {
				return fmt.Errorf("count %s: %w", v.name, err)
			}
			*v.dest = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &counts, nil
}
