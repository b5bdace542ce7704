package services_test

import (
	"testing"

	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskLifecycleTestSuite exercises the full create/toggle/delete path of a
// task against a shared in-memory database.
type TaskLifecycleTestSuite struct {
	suite.Suite
	db    *gorm.DB
	tasks services.TaskService
	lists services.ListService

	list models.List
}

func (s *TaskLifecycleTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.Exec(`
		CREATE TABLE lists (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			user_identifier TEXT,
			is_default BOOLEAN NOT NULL DEFAULT false,
			created_at DATETIME
		)
	`).Error
	s.Require().NoError(err)

	err = db.Exec(`
		CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			list_id TEXT NOT NULL,
			title TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT false,
			is_important BOOLEAN NOT NULL DEFAULT false,
			is_my_day BOOLEAN NOT NULL DEFAULT false,
			notes TEXT,
			due_date DATETIME,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			ai_enrichment TEXT
		)
	`).Error
	s.Require().NoError(err)

	s.db = db
	s.tasks = services.NewTaskService(&recordingPublisher{})
	s.lists = services.NewListService()

	list := models.List{Title: "Errands", IsDefault: true}
	s.Require().NoError(s.lists.CreateList(db, &list))
	s.list = list
}

func (s *TaskLifecycleTestSuite) TestTaskLifecycle() {
	task := models.Task{ListID: s.list.ID, Title: "Return library books"}
	s.Require().NoError(s.tasks.CreateTask(s.db, &task))
	s.NotEqual(uuid.Nil, task.ID)

	fetched, err := s.tasks.GetTaskByID(s.db, task.ID)
	s.Require().NoError(err)
	s.Equal("Return library books", fetched.Title)
	s.False(fetched.IsCompleted)

	updated, err := s.tasks.UpdateTask(s.db, task.ID, map[string]interface{}{
		"is_completed": true,
		"is_important": true,
	})
	s.Require().NoError(err)
	s.Require().Len(updated, 1)
	s.True(updated[0].IsCompleted)
	s.True(updated[0].IsImportant)

	filtered, err := s.tasks.GetTasks(s.db, services.TaskFilter{Filter: services.FilterImportant})
	s.Require().NoError(err)
	s.Len(filtered, 1)

	s.Require().NoError(s.tasks.DeleteTask(s.db, task.ID))

	remaining, err := s.tasks.GetTasks(s.db, services.TaskFilter{})
	s.Require().NoError(err)
	s.Empty(remaining)

	// Deleting again still succeeds.
	s.NoError(s.tasks.DeleteTask(s.db, task.ID))
}

func (s *TaskLifecycleTestSuite) TestListsOwnTheirTasks() {
	other := models.List{Title: "Work"}
	s.Require().NoError(s.lists.CreateList(s.db, &other))

	task := models.Task{ListID: other.ID, Title: "File expense report"}
	s.Require().NoError(s.tasks.CreateTask(s.db, &task))
	defer s.tasks.DeleteTask(s.db, task.ID)

	scoped, err := s.tasks.GetTasks(s.db, services.TaskFilter{ListID: &other.ID})
	s.Require().NoError(err)
	s.Require().Len(scoped, 1)
	s.Equal(other.ID, scoped[0].ListID)

	unrelated, err := s.tasks.GetTasks(s.db, services.TaskFilter{ListID: &s.list.ID})
	s.Require().NoError(err)
	s.Empty(unrelated)
}

func TestTaskLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(TaskLifecycleTestSuite))
}
