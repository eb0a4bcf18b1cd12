package articles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"feedreader/internal/articles/mocks"
	"feedreader/internal/domain"
)

const testUser = "user-1"

type ServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	articles      *mocks.MockArticleStore
	subscriptions *mocks.MockSubscriptionStore

	service *Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.articles = mocks.NewMockArticleStore(s.ctrl)
	s.subscriptions = mocks.NewMockSubscriptionStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewService(s.articles, s.subscriptions, logger)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// corpus builds n feed entries in published-descending order, all owned by
// an unfiltered subscription.
func corpus(n int) []domain.FeedEntry {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := make([]domain.FeedEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, domain.FeedEntry{
			Article: domain.Article{
				ID:          fmt.Sprintf("art-%03d", i),
				Title:       fmt.Sprintf("Article %d", i),
				PublishedAt: base.Add(-time.Duration(i) * time.Hour),
			},
			SubscriptionID: "sub-plain",
		})
	}
	return entries
}

func entry(id, subID string, filterEnabled bool, mode domain.FilterMode, title string) domain.FeedEntry {
	return domain.FeedEntry{
		Article:        domain.Article{ID: id, Title: title},
		SubscriptionID: subID,
		FilterEnabled:  filterEnabled,
		FilterMode:     mode,
	}
}

func intPtr(v int) *int { return &v }

func (s *ServiceTestSuite) TestList_DirectFirstPage() {
	ctx := context.Background()
	all := corpus(50)

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 21, 0).Return(all[:21], nil)
	s.articles.EXPECT().CountDistinctArticles(ctx, testUser, domain.Predicates{}).Return(50, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})

	s.NoError(err)
	s.Len(page.Items, 20)
	s.Equal(50, page.Total)
	s.False(page.ApproximateTotal)
	s.True(page.HasMore)
	s.Equal("art-000", page.Items[0].ID)
}

func (s *ServiceTestSuite) TestList_DirectLastPartialPage() {
	ctx := context.Background()
	all := corpus(50)

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 21, 40).Return(all[40:], nil)
	s.articles.EXPECT().CountDistinctArticles(ctx, testUser, domain.Predicates{}).Return(50, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20, Offset: 40})

	s.NoError(err)
	s.Len(page.Items, 10)
	s.Equal(50, page.Total)
	s.False(page.HasMore)
}

func (s *ServiceTestSuite) TestList_DirectCursorTakesPrecedence() {
	ctx := context.Background()
	all := corpus(50)

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 11, 30).Return(all[30:41], nil)
	s.articles.EXPECT().CountDistinctArticles(ctx, testUser, domain.Predicates{}).Return(50, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 10, Offset: 5, Cursor: intPtr(30)})

	s.NoError(err)
	s.Len(page.Items, 10)
	s.True(page.HasMore)
}

func (s *ServiceTestSuite) TestList_LimitDefaultsAndCap() {
	ctx := context.Background()

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil).Times(2)
	s.articles.EXPECT().CountDistinctArticles(ctx, testUser, domain.Predicates{}).Return(0, nil).Times(2)

	// Zero limit falls back to the default page size.
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, DefaultLimit+1, 0).Return(nil, nil)
	_, err := s.service.List(ctx, testUser, ListOptions{})
	s.NoError(err)

	// Oversized limit is capped.
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, MaxLimit+1, 0).Return(nil, nil)
	_, err = s.service.List(ctx, testUser, ListOptions{Limit: 5000})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestList_DirectPredicatesPassedThrough() {
	ctx := context.Background()
	catID := "cat-1"
	read := false
	want := domain.Predicates{CategoryID: &catID, Read: &read}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, want, 21, 0).Return(nil, nil)
	s.articles.EXPECT().CountDistinctArticles(ctx, testUser, want).Return(0, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20, CategoryID: &catID, Read: &read})

	s.NoError(err)
	s.Empty(page.Items)
	s.False(page.HasMore)
}

// Walking the whole corpus page by page must reproduce it exactly, with no
// duplicates and no gaps.
func (s *ServiceTestSuite) TestList_DirectPaginationCompleteness() {
	ctx := context.Background()
	all := corpus(50)

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil).AnyTimes()
	s.articles.EXPECT().
		QueryArticles(ctx, testUser, domain.Predicates{}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ domain.Predicates, limit, offset int) ([]domain.FeedEntry, error) {
			if offset >= len(all) {
				return nil, nil
			}
			end := offset + limit
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], nil
		}).
		AnyTimes()
	s.articles.EXPECT().CountDistinctArticles(ctx, testUser, domain.Predicates{}).Return(len(all), nil).AnyTimes()

	const pageSize = 7
	var gotIDs []string
	for offset := 0; ; offset += pageSize {
		page, err := s.service.List(ctx, testUser, ListOptions{Limit: pageSize, Offset: offset})
		s.Require().NoError(err)
		for _, item := range page.Items {
			gotIDs = append(gotIDs, item.ID)
		}
		if !page.HasMore {
			break
		}
	}

	s.Require().Len(gotIDs, len(all))
	for i, e := range all {
		s.Equal(e.Article.ID, gotIDs[i])
	}
}

func (s *ServiceTestSuite) TestList_FilteredIncludeMode() {
	ctx := context.Background()

	entries := []domain.FeedEntry{
		entry("art-1", "sub-f", true, domain.FilterModeInclude, "Widevine CDM update"),
		entry("art-2", "sub-plain", false, "", "Unrelated post"),
		entry("art-3", "sub-f", true, domain.FilterModeInclude, "PlayReady on smart TVs"),
		entry("art-4", "sub-f", true, domain.FilterModeInclude, "Cooking with cast iron"),
		entry("art-5", "sub-plain", false, "", "Another unrelated post"),
	}
	rules := map[string][]domain.FilterRule{
		"sub-f": {
			{Field: domain.FieldTitle, MatchType: domain.MatchContains, Pattern: "widevine"},
			{Field: domain.FieldTitle, MatchType: domain.MatchContains, Pattern: "playready"},
		},
	}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).Return(entries, nil)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-f"}).Return(rules, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})

	s.NoError(err)
	s.Require().Len(page.Items, 4)
	s.Equal("art-1", page.Items[0].ID)
	s.Equal("art-2", page.Items[1].ID)
	s.Equal("art-3", page.Items[2].ID)
	s.Equal("art-5", page.Items[3].ID)
	s.True(page.ApproximateTotal)
	s.Equal(4, page.Total)
	s.False(page.HasMore)
}

func (s *ServiceTestSuite) TestList_FilteredExcludeMode() {
	ctx := context.Background()

	entries := []domain.FeedEntry{
		entry("art-1", "sub-f", true, domain.FilterModeExclude, "Morning digest"),
		entry("art-2", "sub-f", true, domain.FilterModeExclude, "Buy cheap spam now"),
		entry("art-3", "sub-f", true, domain.FilterModeExclude, "Weekly roundup"),
	}
	rules := map[string][]domain.FilterRule{
		"sub-f": {
			{Field: domain.FieldTitle, MatchType: domain.MatchContains, Pattern: "spam"},
		},
	}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).Return(entries, nil)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-f"}).Return(rules, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})

	s.NoError(err)
	s.Require().Len(page.Items, 2)
	s.Equal("art-1", page.Items[0].ID)
	s.Equal("art-3", page.Items[1].ID)
}

func (s *ServiceTestSuite) TestList_FilteredCursorIgnored() {
	ctx := context.Background()

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil)
	// Only the raw offset reaches storage; the cursor would count
	// post-filter items and cannot be used as a pre-filter offset.
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 5).Return(nil, nil)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, gomock.Nil()).Return(map[string][]domain.FilterRule{}, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20, Offset: 5, Cursor: intPtr(400)})

	s.NoError(err)
	s.Empty(page.Items)
	s.Equal(5, page.Total)
	s.True(page.ApproximateTotal)
}

func (s *ServiceTestSuite) TestList_FilteredOverFetchWindow() {
	ctx := context.Background()

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil).Times(2)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, gomock.Nil()).Return(map[string][]domain.FilterRule{}, nil).Times(2)

	// Small limits fall back to the window floor of 100.
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).Return(nil, nil)
	_, err := s.service.List(ctx, testUser, ListOptions{Limit: 10})
	s.NoError(err)

	// Larger limits scale the window by the over-fetch factor.
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 120, 0).Return(nil, nil)
	_, err = s.service.List(ctx, testUser, ListOptions{Limit: 40})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestList_FilteredEmptyRulesRejectEverything() {
	ctx := context.Background()

	entries := []domain.FeedEntry{
		entry("art-1", "sub-inc", true, domain.FilterModeInclude, "Anything"),
		entry("art-2", "sub-exc", true, domain.FilterModeExclude, "Anything else"),
		entry("art-3", "sub-plain", false, "", "Passes through"),
	}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-inc", "sub-exc"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).Return(entries, nil)
	// No configured rules for either enabled subscription.
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-inc", "sub-exc"}).
		Return(map[string][]domain.FilterRule{}, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})

	s.NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("art-3", page.Items[0].ID)
}

func (s *ServiceTestSuite) TestList_FilteredMalformedRegexAdmitsNothing() {
	ctx := context.Background()

	entries := []domain.FeedEntry{
		entry("art-1", "sub-f", true, domain.FilterModeInclude, "invalid regex"),
		entry("art-2", "sub-f", true, domain.FilterModeInclude, "[invalid regex"),
	}
	rules := map[string][]domain.FilterRule{
		"sub-f": {
			{Field: domain.FieldTitle, MatchType: domain.MatchRegex, Pattern: "[invalid regex"},
		},
	}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).Return(entries, nil)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-f"}).Return(rules, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})

	s.NoError(err)
	s.Empty(page.Items)
}

func (s *ServiceTestSuite) TestList_FilteredHasMoreAndApproximateTotal() {
	ctx := context.Background()

	// 8 admitted rows for a page of 5, at offset 10.
	var entries []domain.FeedEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, entry(fmt.Sprintf("art-%d", i), "sub-plain", false, "", "Plain"))
	}
	entries = append(entries, entry("art-rejected", "sub-f", true, domain.FilterModeInclude, "No match here"))

	rules := map[string][]domain.FilterRule{
		"sub-f": {
			{Field: domain.FieldTitle, MatchType: domain.MatchContains, Pattern: "zzz"},
		},
	}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 10).Return(entries, nil)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-f"}).Return(rules, nil)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 5, Offset: 10})

	s.NoError(err)
	s.Len(page.Items, 5)
	s.True(page.HasMore)
	// Admitted within the window plus the offset already consumed.
	s.Equal(18, page.Total)
	s.True(page.ApproximateTotal)
}

func (s *ServiceTestSuite) TestList_FilteredBatchLoadsRulesOnce() {
	ctx := context.Background()

	entries := []domain.FeedEntry{
		entry("art-1", "sub-a", true, domain.FilterModeInclude, "alpha"),
		entry("art-2", "sub-b", true, domain.FilterModeInclude, "beta"),
		entry("art-3", "sub-a", true, domain.FilterModeInclude, "alpha again"),
		entry("art-4", "sub-b", true, domain.FilterModeInclude, "beta again"),
	}
	rules := map[string][]domain.FilterRule{
		"sub-a": {{Field: domain.FieldTitle, MatchType: domain.MatchContains, Pattern: "alpha"}},
		"sub-b": {{Field: domain.FieldTitle, MatchType: domain.MatchContains, Pattern: "beta"}},
	}

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-a", "sub-b"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).Return(entries, nil)
	// One grouped query for all subscriptions seen in the window, not one
	// query per subscription.
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-a", "sub-b"}).Return(rules, nil).Times(1)

	page, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})

	s.NoError(err)
	s.Len(page.Items, 4)
}

func (s *ServiceTestSuite) TestList_StorageErrorsPropagate() {
	ctx := context.Background()
	boom := errors.New("connection refused")

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, boom)
	_, err := s.service.List(ctx, testUser, ListOptions{Limit: 20})
	s.ErrorIs(err, boom)

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return(nil, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 21, 0).Return(nil, boom)
	_, err = s.service.List(ctx, testUser, ListOptions{Limit: 20})
	s.ErrorIs(err, boom)

	s.subscriptions.EXPECT().ListFilterEnabled(ctx, testUser).Return([]string{"sub-f"}, nil)
	s.articles.EXPECT().QueryArticles(ctx, testUser, domain.Predicates{}, 100, 0).
		Return([]domain.FeedEntry{entry("a", "sub-f", true, domain.FilterModeInclude, "t")}, nil)
	s.subscriptions.EXPECT().LoadFilterRules(ctx, []string{"sub-f"}).Return(nil, boom)
	_, err = s.service.List(ctx, testUser, ListOptions{Limit: 20})
	s.ErrorIs(err, boom)
}

func (s *ServiceTestSuite) TestCounts() {
	ctx := context.Background()
	subID := "sub-1"

	base := domain.Predicates{SubscriptionID: &subID}
	unread := base
	f := false
	unread.Read = &f
	read := base
	tr := true
	read.Read = &tr
	saved := base
	sv := true
	saved.Saved = &sv

	s.articles.EXPECT().CountDistinctArticles(gomock.Any(), testUser, base).Return(42, nil)
	s.articles.EXPECT().CountDistinctArticles(gomock.Any(), testUser, unread).Return(30, nil)
	s.articles.EXPECT().CountDistinctArticles(gomock.Any(), testUser, read).Return(12, nil)
	s.articles.EXPECT().CountDistinctArticles(gomock.Any(), testUser, saved).Return(3, nil)

	counts, err := s.service.Counts(ctx, testUser, CountOptions{SubscriptionID: &subID})

	s.NoError(err)
	s.Equal(&Counts{All: 42, Unread: 30, Read: 12, Saved: 3}, counts)
}

func (s *ServiceTestSuite) TestCounts_ErrorPropagates() {
	ctx := context.Background()
	boom := errors.New("query failed")

	s.articles.EXPECT().CountDistinctArticles(gomock.Any(), testUser, gomock.Any()).
		Return(0, boom).MinTimes(1).MaxTimes(4)
	s.articles.EXPECT().CountDistinctArticles(gomock.Any(), testUser, gomock.Any()).
		Return(0, nil).AnyTimes()

	_, err := s.service.Counts(ctx, testUser, CountOptions{})
	s.ErrorIs(err, boom)
}
