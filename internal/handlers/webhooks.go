package handlers

import (
	"encoding/json"
	"net/http"

	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EnrichmentWebhookHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewEnrichmentWebhookHandler(db *gorm.DB, taskService services.TaskService) *EnrichmentWebhookHandler {
	return &EnrichmentWebhookHandler{db: db, taskService: taskService}
}

// EnrichTask writes the enrichment payload verbatim onto the task. The
// payload is opaque; no shape validation happens here or anywhere else.
// taskTitle is accepted for pipeline symmetry but unused.
func (h *EnrichmentWebhookHandler) EnrichTask(c *gin.Context) {
	var input struct {
		TaskID         string          `json:"taskId"`
		TaskTitle      string          `json:"taskTitle"`
		EnrichmentData json.RawMessage `json:"enrichmentData"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.TaskID == "" || len(input.EnrichmentData) == 0 || string(input.EnrichmentData) == "null" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing taskId or enrichmentData"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"component": "webhook",
		"task_id":   input.TaskID,
		"title":     input.TaskTitle,
	}).Info("received enrichment")

	id := uuid.FromStringOrNil(input.TaskID)
	if err := h.taskService.SetEnrichment(h.db, id, models.JSONValue(input.EnrichmentData)); err != nil {
		logrus.WithError(err).WithField("task_id", input.TaskID).Error("enrichment update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task enriched successfully"})
}
