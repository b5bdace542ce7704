package services

import (
	"errors"
	"time"

	"flowtask/internal/events"
	"flowtask/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	FilterMyDay     = "my-day"
	FilterImportant = "important"
)

// TaskFilter narrows a listing. ListID applies first, then at most one of the
// boolean filters.
type TaskFilter struct {
	ListID *uuid.UUID
	Filter string
}

type TaskService interface {
	GetTasks(db *gorm.DB, filter TaskFilter) ([]models.Task, error)
	GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	CreateTask(db *gorm.DB, task *models.Task) error
	UpdateTask(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) ([]models.Task, error)
	DeleteTask(db *gorm.DB, id uuid.UUID) error
	SetEnrichment(db *gorm.DB, id uuid.UUID, payload models.JSONValue) error
	ResetMyDay(db *gorm.DB) (int64, error)
	DeleteCompletedBefore(db *gorm.DB, cutoff time.Time) (int64, error)
}

type TaskServiceImpl struct {
	publisher events.Publisher
}

func NewTaskService(publisher events.Publisher) *TaskServiceImpl {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TaskServiceImpl{publisher: publisher}
}

func (s *TaskServiceImpl) GetTasks(db *gorm.DB, filter TaskFilter) ([]models.Task, error) {
	query := db.Order("created_at ASC")

	if filter.ListID != nil {
		query = query.Where("list_id = ?", *filter.ListID)
	}

	switch filter.Filter {
	case FilterMyDay:
		query = query.Where("is_my_day = ?", true)
	case FilterImportant:
		query = query.Where("is_important = ?", true)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := db.First(&task, "id = ?", id).Error
	return task, err
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task *models.Task) error {
	if task.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		task.ID = id
	}
	if err := db.Create(task).Error; err != nil {
		return err
	}

	s.publisher.PublishTaskChange(events.TaskChange{
		Type:   events.TypeInsert,
		Record: *task,
	})
	return nil
}

// UpdateTask applies a partial update and returns the resulting row as a
// one-element slice. A missing row is not an error; it yields an empty slice,
// matching the store's zero-row-affected behavior.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) ([]models.Task, error) {
	if len(fields) > 0 {
		if err := db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var task models.Task
	err := db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, err
	}

	s.publisher.PublishTaskChange(events.TaskChange{
		Type:   events.TypeUpdate,
		Record: task,
	})
	return []models.Task{task}, nil
}

// DeleteTask removes the row by id. Deleting a missing row succeeds.
func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		s.publisher.PublishTaskChange(events.TaskChange{
			Type:   events.TypeDelete,
			Record: models.Task{ID: id},
		})
	}
	return nil
}

// SetEnrichment writes the enrichment payload verbatim. The payload shape is
// never validated; it is opaque to this system.
func (s *TaskServiceImpl) SetEnrichment(db *gorm.DB, id uuid.UUID, payload models.JSONValue) error {
	if err := db.Model(&models.Task{}).Where("id = ?", id).Update("ai_enrichment", payload).Error; err != nil {
		return err
	}

	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err == nil {
		s.publisher.PublishTaskChange(events.TaskChange{
			Type:   events.TypeUpdate,
			Record: task,
		})
	}
	return nil
}

// ResetMyDay clears the my-day flag on every task. Run by the scheduler.
func (s *TaskServiceImpl) ResetMyDay(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Task{}).Where("is_my_day = ?", true).Update("is_my_day", false)
	return result.RowsAffected, result.Error
}

// DeleteCompletedBefore removes tasks completed and untouched since cutoff.
func (s *TaskServiceImpl) DeleteCompletedBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("is_completed = ? AND updated_at < ?", true, cutoff).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
