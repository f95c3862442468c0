package handlers

import (
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"citybuddy/mailer"
	"citybuddy/models"
	"citybuddy/orchestrator"
	"citybuddy/rabbitmq"
	"citybuddy/store"
)

// Handlers translate HTTP requests 1:1 into orchestrator calls. The response
// is always the WorkflowResult serialized to JSON: 200 on success, 400 on
// logical failure, 413 on oversized upload.
type Handlers struct {
	orch      *orchestrator.Orchestrator
	store     *store.Store        // optional
	publisher *rabbitmq.Publisher // optional
	mailer    *mailer.Mailer      // optional
	maxUpload int64
}

// NewHandlers creates new HTTP handlers. store, publisher and mailer may be
// nil; results are then returned to the caller without persistence, fan-out
// or dispatch.
func NewHandlers(orch *orchestrator.Orchestrator, st *store.Store, pub *rabbitmq.Publisher, ml *mailer.Mailer, maxUpload int64) *Handlers {
	return &Handlers{
		orch:      orch,
		store:     st,
		publisher: pub,
		mailer:    ml,
		maxUpload: maxUpload,
	}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "citybuddy",
	})
}

// Analyze accepts multipart form data (query + optional image) and routes
// through intent classification.
func (h *Handlers) Analyze(c *gin.Context) {
	query := c.PostForm("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	imageData, ok := h.readImage(c)
	if !ok {
		return
	}

	result := h.orch.Process(query, imageData)
	h.finish(c, result)
}

// ReportCategory returns a handler that dispatches straight into one
// category pipeline, skipping intent classification.
func (h *Handlers) ReportCategory(cat models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		imageData, ok := h.readImage(c)
		if !ok {
			return
		}
		result := h.orch.ProcessReport(cat, imageData)
		h.finish(c, result)
	}
}

type chatRequest struct {
	Query string `json:"query" binding:"required"`
}

// Chat handles text-only conversational requests
func (h *Handlers) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result := h.orch.Process(req.Query, nil)
	h.finish(c, result)
}

// GetReport returns a persisted workflow result by identifier
func (h *Handlers) GetReport(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "persistence is not configured"})
		return
	}

	result, err := h.store.Get(c.Param("id"))
	if err != nil {
		log.Errorf("failed to load report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// readImage pulls the optional image file out of a multipart request. The
// second return value is false when a response has already been written.
func (h *Handlers) readImage(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image attached; image-required pipelines fail downstream with a
		// descriptive error instead of a transport-level one.
		return nil, true
	}

	if fileHeader.Size > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "uploaded image exceeds the size limit",
		})
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded image"})
		return nil, false
	}
	defer f.Close()

	imageData, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded image"})
		return nil, false
	}
	return imageData, true
}

// finish persists, publishes and optionally dispatches the result, then
// writes it with a status derived from the success flag. Collaborator
// failures are logged, never surfaced: the result still goes to the caller.
func (h *Handlers) finish(c *gin.Context, result *models.WorkflowResult) {
	if h.store != nil {
		if id, err := h.store.Save(result); err != nil {
			log.Warnf("failed to persist workflow result: %v", err)
		} else {
			result.ReportID = id
		}
	}

	if h.publisher != nil {
		if err := h.publisher.Publish(result); err != nil {
			log.Warnf("failed to publish workflow result: %v", err)
		}
	}

	if h.mailer != nil && result.Success && result.Email != nil {
		if err := h.mailer.Send(result.Email); err != nil {
			log.Warnf("failed to send complaint email: %v", err)
		}
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
