package domain

import "time"

// Article is an immutable content record produced by the ingest pipeline.
type Article struct {
	ID          string
	SourceID    string
	GUID        string
	Title       string
	Description string
	Content     string
	Author      string
	Link        string
	ImageURL    string
	AudioURL    string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// UserArticleState carries the per-user flags attached to an article.
type UserArticleState struct {
	Read          bool
	Saved         bool
	AudioProgress *float64
}

// FeedEntry is one joined row of the user's feed: the article plus the
// subscription it arrived through and the user's state for it.
type FeedEntry struct {
	Article        Article
	SubscriptionID string
	FilterEnabled  bool
	FilterMode     FilterMode
	State          UserArticleState
}

// Predicates narrows a feed query. Nil fields are ignored.
type Predicates struct {
	CategoryID     *string
	SubscriptionID *string
	Read           *bool
	Saved          *bool
}
