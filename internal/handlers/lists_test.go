package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowtask/internal/handlers"
	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MockListService struct {
	shouldReturnError bool
	lists             []models.List
}

func (m *MockListService) GetLists(db *gorm.DB) ([]models.List, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	return m.lists, nil
}

func (m *MockListService) CreateList(db *gorm.DB, list *models.List) error {
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	if list.Title == "" {
		return services.ErrEmptyTitle
	}
	list.ID = uuid.Must(uuid.NewV4())
	m.lists = append(m.lists, *list)
	return nil
}

func setupListHandler() (*MockListService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockService := &MockListService{}
	handler := handlers.NewListHandler(nil, mockService)

	router := gin.New()
	router.GET("/lists", handler.GetLists)
	router.POST("/lists", handler.CreateList)

	return mockService, router
}

func TestGetListsEmpty(t *testing.T) {
	_, router := setupListHandler()

	req, _ := http.NewRequest("GET", "/lists", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
}

func TestGetLists(t *testing.T) {
	mockService, router := setupListHandler()
	mockService.lists = []models.List{
		{ID: uuid.Must(uuid.NewV4()), Title: "Groceries", IsDefault: true},
		{ID: uuid.Must(uuid.NewV4()), Title: "Work"},
	}

	req, _ := http.NewRequest("GET", "/lists", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var lists []models.List
	if err := json.Unmarshal(w.Body.Bytes(), &lists); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(lists) != 2 {
		t.Errorf("Expected 2 lists, got %d", len(lists))
	}
	if lists[0].Title != "Groceries" || !lists[0].IsDefault {
		t.Errorf("Unexpected first list: %+v", lists[0])
	}
}

func TestCreateList(t *testing.T) {
	_, router := setupListHandler()

	body := map[string]interface{}{
		"title":           "Errands",
		"user_identifier": "dev@example.com",
	}
	data, _ := json.Marshal(body)

	req, _ := http.NewRequest("POST", "/lists", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var created []models.List
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Expected one created list, got %d", len(created))
	}
	if created[0].Title != "Errands" {
		t.Errorf("Expected title 'Errands', got '%s'", created[0].Title)
	}
	if created[0].UserIdentifier != "dev@example.com" {
		t.Errorf("Expected owner preserved, got '%s'", created[0].UserIdentifier)
	}
}

func TestCreateListMissingTitle(t *testing.T) {
	_, router := setupListHandler()

	data, _ := json.Marshal(map[string]interface{}{"user_identifier": "dev@example.com"})
	req, _ := http.NewRequest("POST", "/lists", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
