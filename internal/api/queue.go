package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/streamcue/streamcue/internal/models"
	"github.com/streamcue/streamcue/internal/queue"
	"github.com/streamcue/streamcue/internal/session"
)

// Request/Response DTOs

// SubmitItemRequest represents a request to submit content to the queue
type SubmitItemRequest struct {
	Provider    string     `json:"provider" binding:"required"`
	ContentType string     `json:"content_type" binding:"required,oneof=clip video highlight other"`
	ProviderID  string     `json:"provider_id" binding:"required"`
	URL         string     `json:"url" binding:"required"`
	EmbedURL    string     `json:"embed_url,omitempty"`
	DirectURL   string     `json:"direct_url,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Title       string     `json:"title" binding:"required"`
	Channel     string     `json:"channel,omitempty"`
	Creator     string     `json:"creator,omitempty"`
	Submitter   string     `json:"submitter" binding:"required"`
	Category    string     `json:"category,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	StartTime   int        `json:"start_time,omitempty" binding:"gte=0"`
	Personas    []string   `json:"personas,omitempty"`
}

// toItem converts a submission request to the engine's value object
func (r *SubmitItemRequest) toItem() models.Item {
	return models.Item{
		Provider:    r.Provider,
		ContentType: models.ContentType(r.ContentType),
		ProviderID:  r.ProviderID,
		URL:         r.URL,
		EmbedURL:    r.EmbedURL,
		DirectURL:   r.DirectURL,
		Thumbnail:   r.Thumbnail,
		Title:       r.Title,
		Channel:     r.Channel,
		Creator:     r.Creator,
		Submitters:  []string{r.Submitter},
		Category:    r.Category,
		PostedAt:    r.PostedAt,
		Duration:    r.Duration,
		StartTime:   r.StartTime,
		Personas:    r.Personas,
	}
}

// PlayItemRequest represents a request to play a queued item out of order
type PlayItemRequest struct {
	Key string `json:"key" binding:"required"`
}

// JumpRequest represents a request to jump to a past history entry
type JumpRequest struct {
	Key string `json:"key" binding:"required"`
}

// QueueStateResponse represents the session state in API responses
type QueueStateResponse struct {
	Current         *models.Item  `json:"current"`
	Upcoming        []models.Item `json:"upcoming"`
	HistoryPosition int           `json:"history_position"`
	QueueLength     int           `json:"queue_length"`
	HistoryLength   int           `json:"history_length"`
}

// HistoryResponse represents the play history in API responses
type HistoryResponse struct {
	Entries         []models.PlayHistoryEntry `json:"entries"`
	HistoryPosition int                       `json:"history_position"`
}

// SubmitItemResponse represents a successful submission
type SubmitItemResponse struct {
	Key         string `json:"key"`
	Status      string `json:"status"`
	QueueLength int    `json:"queue_length"`
}

// QueueHandler handles queue navigation API requests
type QueueHandler struct {
	service *session.QueueService
}

// NewQueueHandler creates a new queue handler instance
func NewQueueHandler(service *session.QueueService) *QueueHandler {
	return &QueueHandler{service: service}
}

// toStateResponse converts an engine snapshot to API response format
func toStateResponse(snap queue.Snapshot) *QueueStateResponse {
	upcoming := snap.Upcoming
	if upcoming == nil {
		upcoming = []models.Item{}
	}
	return &QueueStateResponse{
		Current:         snap.Current,
		Upcoming:        upcoming,
		HistoryPosition: snap.HistoryPosition,
		QueueLength:     len(snap.Upcoming),
		HistoryLength:   len(snap.History),
	}
}

// Submit handles POST /api/queue/items
func (h *QueueHandler) Submit(c *gin.Context) {
	var req SubmitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	record, err := h.service.Submit(c.Request.Context(), req.toItem())
	if err != nil {
		respondQueueError(c, err)
		return
	}

	snap := h.service.Snapshot()
	c.JSON(http.StatusCreated, SubmitItemResponse{
		Key:         record.Key,
		Status:      string(record.Status),
		QueueLength: len(snap.Upcoming),
	})
}

// GetState handles GET /api/queue
func (h *QueueHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(h.service.Snapshot()))
}

// Advance handles POST /api/queue/advance
func (h *QueueHandler) Advance(c *gin.Context) {
	snap, err := h.service.Advance(c.Request.Context())
	if err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStateResponse(snap))
}

// Previous handles POST /api/queue/previous
func (h *QueueHandler) Previous(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(h.service.Previous()))
}

// PlayNow handles POST /api/queue/play
func (h *QueueHandler) PlayNow(c *gin.Context) {
	var req PlayItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	snap, err := h.service.PlayNow(c.Request.Context(), req.Key)
	if err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStateResponse(snap))
}

// Jump handles POST /api/queue/jump
func (h *QueueHandler) Jump(c *gin.Context) {
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	snap, err := h.service.JumpTo(req.Key)
	if err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStateResponse(snap))
}

// ClearQueue handles DELETE /api/queue
func (h *QueueHandler) ClearQueue(c *gin.Context) {
	if err := h.service.ClearQueue(c.Request.Context()); err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStateResponse(h.service.Snapshot()))
}

// GetHistory handles GET /api/history
func (h *QueueHandler) GetHistory(c *gin.Context) {
	snap := h.service.Snapshot()
	entries := snap.History
	if entries == nil {
		entries = []models.PlayHistoryEntry{}
	}
	c.JSON(http.StatusOK, HistoryResponse{
		Entries:         entries,
		HistoryPosition: snap.HistoryPosition,
	})
}

// ClearHistory handles DELETE /api/history
func (h *QueueHandler) ClearHistory(c *gin.Context) {
	if err := h.service.ClearHistory(c.Request.Context()); err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStateResponse(h.service.Snapshot()))
}

// respondQueueError maps service errors to HTTP responses
func respondQueueError(c *gin.Context, err error) {
	switch {
	case session.IsDuplicateSubmission(err):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "duplicate_submission",
			Message: err.Error(),
		})
	case session.IsQueueFull(err):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "queue_full",
			Message: err.Error(),
		})
	case session.IsItemNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "item_not_found",
			Message: err.Error(),
		})
	case queue.IsHistoryEntryNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "history_entry_not_found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

// SetupQueueRoutes registers queue and history routes
func SetupQueueRoutes(apiGroup *gin.RouterGroup, service *session.QueueService) {
	handler := NewQueueHandler(service)

	queueGroup := apiGroup.Group("/queue")
	{
		queueGroup.GET("", handler.GetState)
		queueGroup.POST("/items", handler.Submit)
		queueGroup.POST("/advance", handler.Advance)
		queueGroup.POST("/previous", handler.Previous)
		queueGroup.POST("/play", handler.PlayNow)
		queueGroup.POST("/jump", handler.Jump)
		queueGroup.DELETE("", handler.ClearQueue)
	}

	historyGroup := apiGroup.Group("/history")
	{
		historyGroup.GET("", handler.GetHistory)
		historyGroup.DELETE("", handler.ClearHistory)
	}
}
