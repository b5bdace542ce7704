package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnrichmentEnqueuer hands a freshly created task to the background
// enrichment pipeline. Nil disables dispatch.
type EnrichmentEnqueuer interface {
	EnqueueEnrichment(task models.Task) error
}

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
	enricher    EnrichmentEnqueuer
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService, enricher EnrichmentEnqueuer) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService, enricher: enricher}
}

// GetTasks lists tasks ordered by creation time, optionally narrowed to one
// list and then by one of the boolean filters.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	var filter services.TaskFilter

	if listIDStr := c.Query("listId"); listIDStr != "" {
		listID, err := uuid.FromString(listIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listId"})
			return
		}
		filter.ListID = &listID
	}

	switch f := c.Query("filter"); f {
	case "", services.FilterMyDay, services.FilterImportant:
		filter.Filter = f
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be my-day or important"})
		return
	}

	tasks, err := h.taskService.GetTasks(h.db, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields, err := services.SanitizeTaskFields(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, _ := fields["title"].(string)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	listID, ok := fields["list_id"].(uuid.UUID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "list_id is required"})
		return
	}

	task := models.Task{
		ListID: listID,
		Title:  title,
	}
	if notes, ok := fields["notes"].(string); ok {
		task.Notes = notes
	}
	applyOptionalTaskFields(&task, fields)

	// Echo the caller's temporary id so optimistic clients can reconcile.
	if ref, ok := body["client_ref"].(string); ok {
		task.ClientRef = ref
	}

	if err := h.taskService.CreateTask(h.db, &task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.enricher != nil {
		if err := h.enricher.EnqueueEnrichment(task); err != nil {
			logrus.WithError(err).WithField("task_id", task.ID.String()).
				Warn("failed to enqueue enrichment request")
		}
	}

	c.JSON(http.StatusOK, []models.Task{task})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields, err := services.SanitizeTaskFields(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.taskService.UpdateTask(h.db, id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTask removes a task by id. Deleting a missing task still succeeds.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := uuid.FromStringOrNil(c.Param("id"))

	if err := h.taskService.DeleteTask(h.db, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func applyOptionalTaskFields(task *models.Task, fields map[string]interface{}) {
	if v, ok := fields["due_date"].(time.Time); ok {
		task.DueDate = &v
	}
	if v, ok := fields["is_completed"].(bool); ok {
		task.IsCompleted = v
	}
	if v, ok := fields["is_important"].(bool); ok {
		task.IsImportant = v
	}
	if v, ok := fields["is_my_day"].(bool); ok {
		task.IsMyDay = v
	}
	if v, ok := fields["position"].(float64); ok {
		task.Position = int(v)
	}
	if v, ok := fields["position"].(json.Number); ok {
		if n, err := v.Int64(); err == nil {
			task.Position = int(n)
		}
	}
}
