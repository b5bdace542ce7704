package services

import (
	"fmt"
	"time"

	"flowtask/internal/cache"
	"flowtask/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	taskListingTTL = 5 * time.Minute
	singleTaskTTL  = 30 * time.Minute
)

// CachedTaskService is a read-through decorator. Every write invalidates the
// listing keys so filtered views never serve deleted or moved rows.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.LayeredCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.LayeredCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func listingKey(filter TaskFilter) string {
	list := "all"
	if filter.ListID != nil {
		list = filter.ListID.String()
	}
	name := filter.Filter
	if name == "" {
		name = "none"
	}
	return fmt.Sprintf("tasks:%s:%s", list, name)
}

func taskKey(id uuid.UUID) string {
	return fmt.Sprintf("task:%s", id.String())
}

func (s *CachedTaskService) invalidate(id uuid.UUID) {
	s.cache.Delete(taskKey(id))
	s.cache.DeletePattern("tasks:*")
}

func (s *CachedTaskService) GetTasks(db *gorm.DB, filter TaskFilter) ([]models.Task, error) {
	key := listingKey(filter)

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.GetTasks(db, filter)
	if err != nil {
		return tasks, err
	}

	s.cache.Set(key, tasks, taskListingTTL)
	return tasks, nil
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var cached models.Task
	if err := s.cache.Get(taskKey(id), &cached); err == nil {
		return cached, nil
	}

	task, err := s.taskService.GetTaskByID(db, id)
	if err != nil {
		return task, err
	}

	s.cache.Set(taskKey(id), task, singleTaskTTL)
	return task, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task *models.Task) error {
	if err := s.taskService.CreateTask(db, task); err != nil {
		return err
	}
	s.cache.Set(taskKey(task.ID), *task, singleTaskTTL)
	s.cache.DeletePattern("tasks:*")
	return nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) ([]models.Task, error) {
	updated, err := s.taskService.UpdateTask(db, id, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(id)
	return updated, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *CachedTaskService) SetEnrichment(db *gorm.DB, id uuid.UUID, payload models.JSONValue) error {
	if err := s.taskService.SetEnrichment(db, id, payload); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *CachedTaskService) ResetMyDay(db *gorm.DB) (int64, error) {
	affected, err := s.taskService.ResetMyDay(db)
	if err != nil {
		return affected, err
	}
	if affected > 0 {
		s.cache.DeletePattern("tasks:*")
		s.cache.DeletePattern("task:*")
	}
	return affected, nil
}

func (s *CachedTaskService) DeleteCompletedBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	affected, err := s.taskService.DeleteCompletedBefore(db, cutoff)
	if err != nil {
		return affected, err
	}
	if affected > 0 {
		s.cache.DeletePattern("tasks:*")
		s.cache.DeletePattern("task:*")
	}
	return affected, nil
}

func (s *CachedTaskService) GetCacheStats() map[string]interface{} {
	return s.cache.Stats()
}
