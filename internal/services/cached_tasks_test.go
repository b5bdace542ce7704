package services_test

import (
	"testing"

	"flowtask/internal/cache"
	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupCachedService(t *testing.T) (*services.CachedTaskService, *gorm.DB) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	layered := cache.NewLayeredCache(cache.NewRedisCacheFromClient(client))
	db := setupTestDB(t)
	inner := services.NewTaskService(nil)
	return services.NewCachedTaskService(inner, layered), db
}

func TestCachedGetTasksReadThrough(t *testing.T) {
	svc, db := setupCachedService(t)
	list := createTestList(t, db, "Inbox", true)

	task := models.Task{ListID: list.ID, Title: "cached"}
	if err := svc.CreateTask(db, &task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	first, err := svc.GetTasks(db, services.TaskFilter{})
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(first))
	}

	// Remove the row behind the cache's back; the cached listing still
	// serves it until an invalidating write happens.
	db.Exec("DELETE FROM tasks")

	second, err := svc.GetTasks(db, services.TaskFilter{})
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(second) != 1 {
		t.Errorf("Expected cached listing, got %d tasks", len(second))
	}
}

func TestCachedWriteInvalidatesListings(t *testing.T) {
	svc, db := setupCachedService(t)
	list := createTestList(t, db, "Inbox", true)

	task := models.Task{ListID: list.ID, Title: "first"}
	if err := svc.CreateTask(db, &task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := svc.GetTasks(db, services.TaskFilter{}); err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}

	second := models.Task{ListID: list.ID, Title: "second"}
	if err := svc.CreateTask(db, &second); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := svc.GetTasks(db, services.TaskFilter{})
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("Expected fresh listing with 2 tasks, got %d", len(tasks))
	}
}

func TestCachedDeleteInvalidatesSingleTask(t *testing.T) {
	svc, db := setupCachedService(t)
	list := createTestList(t, db, "Inbox", true)

	task := models.Task{ListID: list.ID, Title: "doomed"}
	if err := svc.CreateTask(db, &task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := svc.GetTaskByID(db, task.ID); err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}

	if err := svc.DeleteTask(db, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	if _, err := svc.GetTaskByID(db, task.ID); err == nil {
		t.Error("Expected a miss after delete, got a cached row")
	}
}
