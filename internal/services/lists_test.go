package services_test

import (
	"testing"
	"time"

	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/gofrs/uuid"
)

func TestCreateListAssignsID(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewListService()

	list := models.List{Title: "Groceries", UserIdentifier: "dev@example.com"}
	if err := svc.CreateList(db, &list); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if list.ID == uuid.Nil {
		t.Error("Expected an assigned id")
	}
}

func TestCreateListEmptyTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewListService()

	err := svc.CreateList(db, &models.List{})
	if err != services.ErrEmptyTitle {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
}

func TestGetListsOrderedByCreation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewListService()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second"} {
		list := models.List{
			ID:        uuid.Must(uuid.NewV4()),
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&list).Error; err != nil {
			t.Fatalf("Failed to seed list: %v", err)
		}
	}

	lists, err := svc.GetLists(db)
	if err != nil {
		t.Fatalf("GetLists failed: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("Expected 2 lists, got %d", len(lists))
	}
	if lists[0].Title != "first" {
		t.Errorf("Expected creation order, got %s first", lists[0].Title)
	}
}
