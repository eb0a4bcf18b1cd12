package api

import (
	"time"

	"feedreader/internal/articles"
)

// articleResponse is the wire shape of one decorated article.
type articleResponse struct {
	ID            string    `json:"id"`
	SourceID      string    `json:"source_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	Link          string    `json:"link"`
	ImageURL      string    `json:"image_url,omitempty"`
	AudioURL      string    `json:"audio_url,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
	Read          bool      `json:"read"`
	Saved         bool      `json:"saved"`
	AudioProgress *float64  `json:"audio_progress"`
}

// listResponse is the wire shape of one feed page.
type listResponse struct {
	Items            []articleResponse `json:"items"`
	Total            int               `json:"total"`
	ApproximateTotal bool              `json:"approximate_total"`
	HasMore          bool              `json:"has_more"`
}

// countsResponse is the wire shape of the counts endpoint.
type countsResponse struct {
	All    int `json:"all"`
	Unread int `json:"unread"`
	Read   int `json:"read"`
	Saved  int `json:"saved"`
}

// progressRequest is the body of the audio progress endpoint.
type progressRequest struct {
	Progress float64 `json:"progress" binding:"min=0"`
}

func toListResponse(page *articles.Page) listResponse {
	items := make([]articleResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, articleResponse{
			ID:            item.ID,
			SourceID:      item.SourceID,
			Title:         item.Title,
			Description:   item.Description,
			Content:       item.Content,
			Author:        item.Author,
			Link:          item.Link,
			ImageURL:      item.ImageURL,
			AudioURL:      item.AudioURL,
			PublishedAt:   item.PublishedAt,
			Read:          item.Read,
			Saved:         item.Saved,
			AudioProgress: item.AudioProgress,
		})
	}
	return listResponse{
		Items:            items,
		Total:            page.Total,
		ApproximateTotal: page.ApproximateTotal,
		HasMore:          page.HasMore,
	}
}
