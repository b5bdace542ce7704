package handlers

import (
	"errors"
	"net/http"

	"flowtask/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExternalTaskHandler serves machine-to-machine task intake. The shared
// secret check lives in middleware; by the time this runs the caller is
// trusted.
type ExternalTaskHandler struct {
	db       *gorm.DB
	external services.ExternalTaskService
	enricher EnrichmentEnqueuer
}

func NewExternalTaskHandler(db *gorm.DB, external services.ExternalTaskService, enricher EnrichmentEnqueuer) *ExternalTaskHandler {
	return &ExternalTaskHandler{db: db, external: external, enricher: enricher}
}

func (h *ExternalTaskHandler) CreateTask(c *gin.Context) {
	var input struct {
		Title string `json:"title"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	task, err := h.external.CreateFromExternal(h.db, input.Title, input.Notes)
	if err != nil {
		if errors.Is(err, services.ErrNoLists) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No lists found to attach task to."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.enricher != nil {
		if err := h.enricher.EnqueueEnrichment(task); err != nil {
			logrus.WithError(err).WithField("task_id", task.ID.String()).
				Warn("failed to enqueue enrichment request")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
		"message": "Task added successfully via external API",
	})
}
