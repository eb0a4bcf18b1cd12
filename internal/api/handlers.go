package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feedreader/internal/articles"
)

// ArticleService is the retrieval pipeline surface the API depends on.
type ArticleService interface {
	List(ctx context.Context, userID string, opts articles.ListOptions) (*articles.Page, error)
	Counts(ctx context.Context, userID string, opts articles.CountOptions) (*articles.Counts, error)
}

// UserStateStore writes the per-user article flags.
type UserStateStore interface {
	SetRead(ctx context.Context, userID, articleID string, read bool) error
	SetSaved(ctx context.Context, userID, articleID string, saved bool) error
	SetAudioProgress(ctx context.Context, userID, articleID string, progress float64) error
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds the HTTP handlers for the reader API.
type Handler struct {
	service   ArticleService
	userState UserStateStore
	db        Pinger
	logger    *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(service ArticleService, userState UserStateStore, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		userState: userState,
		db:        db,
		logger:    logger.With("component", "api"),
	}
}

// ListArticles handles GET /api/articles.
func (h *Handler) ListArticles(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	opts, ok := h.parseListOptions(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), userID, opts)
	if err != nil {
		h.internalError(c, "list articles", err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(page))
}

// GetCounts handles GET /api/articles/counts.
func (h *Handler) GetCounts(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var opts articles.CountOptions
	if v := c.Query("category_id"); v != "" {
		opts.CategoryID = &v
	}
	if v := c.Query("subscription_id"); v != "" {
		opts.SubscriptionID = &v
	}

	counts, err := h.service.Counts(c.Request.Context(), userID, opts)
	if err != nil {
		h.internalError(c, "get counts", err)
		return
	}

	c.JSON(http.StatusOK, countsResponse{
		All:    counts.All,
		Unread: counts.Unread,
		Read:   counts.Read,
		Saved:  counts.Saved,
	})
}

// SetRead handles POST and DELETE /api/articles/:id/read.
func (h *Handler) SetRead(c *gin.Context) {
	h.setFlag(c, "read", h.userState.SetRead)
}

// SetSaved handles POST and DELETE /api/articles/:id/saved.
func (h *Handler) SetSaved(c *gin.Context) {
	h.setFlag(c, "saved", h.userState.SetSaved)
}

// SetProgress handles PUT /api/articles/:id/progress.
func (h *Handler) SetProgress(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress body"})
		return
	}

	if err := h.userState.SetAudioProgress(c.Request.Context(), userID, c.Param("id"), req.Progress); err != nil {
		h.internalError(c, "set audio progress", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) setFlag(c *gin.Context, name string, set func(ctx context.Context, userID, articleID string, v bool) error) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	value := c.Request.Method != http.MethodDelete
	if err := set(c.Request.Context(), userID, c.Param("id"), value); err != nil {
		h.internalError(c, "set "+name+" flag", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// userID extracts the requesting user from the X-User-ID header. Real
// authentication sits in front of this service; the header is trusted.
func (h *Handler) userID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header required"})
		return "", false
	}
	return userID, true
}

func (h *Handler) parseListOptions(c *gin.Context) (articles.ListOptions, bool) {
	var opts articles.ListOptions

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return opts, false
		}
		opts.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return opts, false
		}
		opts.Offset = offset
	}
	if v := c.Query("cursor"); v != "" {
		cursor, err := strconv.Atoi(v)
		if err != nil || cursor < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cursor must be a non-negative integer"})
			return opts, false
		}
		opts.Cursor = &cursor
	}
	if v := c.Query("category_id"); v != "" {
		opts.CategoryID = &v
	}
	if v := c.Query("subscription_id"); v != "" {
		opts.SubscriptionID = &v
	}
	if v := c.Query("read"); v != "" {
		read, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read must be a boolean"})
			return opts, false
		}
		opts.Read = &read
	}
	if v := c.Query("saved"); v != "" {
		saved, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "saved must be a boolean"})
			return opts, false
		}
		opts.Saved = &saved
	}

	return opts, true
}

// internalError hides storage details from the client; the core has no
// meaningful fallback for missing data, so the whole call fails generically.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("request failed", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
