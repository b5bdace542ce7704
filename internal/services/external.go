package services

import (
	"errors"

	"flowtask/internal/models"

	"gorm.io/gorm"
)

// ErrNoLists means external intake found nothing to attach a task to. Intake
// never auto-provisions a list.
var ErrNoLists = errors.New("no lists found to attach task to")

type ExternalTaskService interface {
	CreateFromExternal(db *gorm.DB, title, notes string) (models.Task, error)
}

// ExternalTaskServiceImpl attaches externally-submitted tasks to the default
// list: a list flagged is_default wins, otherwise the oldest list.
type ExternalTaskServiceImpl struct {
	tasks TaskService
}

func NewExternalTaskService(tasks TaskService) *ExternalTaskServiceImpl {
	return &ExternalTaskServiceImpl{tasks: tasks}
}

func (s *ExternalTaskServiceImpl) CreateFromExternal(db *gorm.DB, title, notes string) (models.Task, error) {
	var list models.List
	err := db.Order("is_default DESC, created_at ASC").First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, ErrNoLists
	}
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ListID: list.ID,
		Title:  title,
		Notes:  notes,
	}
	if err := s.tasks.CreateTask(db, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}
