package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flowtask/internal/config"
	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnqueueEnrichment asks the pipeline to enrich a freshly created task. The
// pipeline responds later through the enrichment webhook.
func (q *JobQueue) EnqueueEnrichment(task models.Task) error {
	return q.Enqueue(QueueEnrichment, JobTypeEnrichmentRequest, map[string]interface{}{
		"taskId":    task.ID.String(),
		"taskTitle": task.Title,
	})
}

// EnqueueCleanup schedules one completed-task sweep.
func (q *JobQueue) EnqueueCleanup() error {
	return q.Enqueue(QueueDefault, JobTypeCompletedCleanup, nil)
}

// NewEnrichmentDispatchHandler returns the handler that forwards a task to
// the external enrichment pipeline.
func NewEnrichmentDispatchHandler(cfg config.EnrichmentConfig) JobHandler {
	client := &http.Client{Timeout: cfg.RequestTimeout}

	return func(ctx context.Context, job *Job) error {
		if cfg.PipelineURL == "" {
			return nil
		}

		body, err := json.Marshal(job.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal enrichment request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.PipelineURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("enrichment pipeline request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("enrichment pipeline returned status %d", resp.StatusCode)
		}

		logrus.WithFields(logrus.Fields{
			"component": "worker",
			"task_id":   job.Payload["taskId"],
		}).Info("enrichment request dispatched")
		return nil
	}
}

// NewCompletedCleanupHandler returns the handler that deletes tasks completed
// longer than retention ago.
func NewCompletedCleanupHandler(db *gorm.DB, tasks services.TaskService, retention time.Duration) JobHandler {
	return func(ctx context.Context, job *Job) error {
		cutoff := time.Now().Add(-retention)
		removed, err := tasks.DeleteCompletedBefore(db.WithContext(ctx), cutoff)
		if err != nil {
			return err
		}
		if removed > 0 {
			logrus.WithFields(logrus.Fields{
				"component": "worker",
				"removed":   removed,
			}).Info("completed tasks cleaned up")
		}
		return nil
	}
}
