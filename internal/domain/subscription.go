package domain

import "time"

// FilterMode controls whether matching rules whitelist or blacklist articles.
type FilterMode string

const (
	FilterModeInclude FilterMode = "include"
	FilterModeExclude FilterMode = "exclude"
)

// FilterField selects which part of an article a rule is matched against.
type FilterField string

const (
	FieldTitle       FilterField = "title"
	FieldDescription FilterField = "description"
	FieldContent     FilterField = "content"
	FieldAuthor      FilterField = "author"
	FieldAny         FilterField = "any"
)

// MatchType selects how a rule's pattern is applied to the field value.
type MatchType string

const (
	MatchContains MatchType = "contains"
	MatchExact    MatchType = "exact"
	MatchRegex    MatchType = "regex"
)

// FilterRule is one field/matchType/pattern tuple scoped to a subscription.
// Rules are ordered by insertion; the order is preserved in evaluation.
type FilterRule struct {
	ID             string
	SubscriptionID string
	Field          FilterField
	MatchType      MatchType
	Pattern        string
	CaseSensitive  bool
	Position       int
}

// Source is a content origin (an RSS/Atom feed) shared between users.
type Source struct {
	ID            string
	URL           string
	Name          string
	SiteURL       string
	RefreshAfter  int // seconds between fetches, 0 means the service default
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subscription is a user's binding to a source, carrying its own filter
// configuration. Rules persist while FilterEnabled is false but are dormant.
type Subscription struct {
	ID            string
	UserID        string
	SourceID      string
	CategoryID    *string
	FilterEnabled bool
	FilterMode    FilterMode
	CreatedAt     time.Time
}

// Category groups a user's subscriptions.
type Category struct {
	ID     string
	UserID string
	Name   string
}
