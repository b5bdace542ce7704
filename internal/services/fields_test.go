package services_test

import (
	"testing"
	"time"

	"flowtask/internal/services"

	"github.com/gofrs/uuid"
)

func TestSanitizeTaskFieldsStripsProtected(t *testing.T) {
	body := map[string]interface{}{
		"title":         "legit",
		"id":            "00000000-0000-0000-0000-000000000001",
		"created_at":    "2020-01-01T00:00:00Z",
		"ai_enrichment": map[string]interface{}{"forged": true},
		"garbage":       42,
	}

	fields, err := services.SanitizeTaskFields(body)
	if err != nil {
		t.Fatalf("SanitizeTaskFields failed: %v", err)
	}
	if len(fields) != 1 {
		t.Errorf("Expected only title to survive, got %v", fields)
	}
	if fields["title"] != "legit" {
		t.Errorf("Expected title preserved, got %v", fields["title"])
	}
}

func TestSanitizeTaskFieldsCoercesListID(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	fields, err := services.SanitizeTaskFields(map[string]interface{}{
		"list_id": id.String(),
	})
	if err != nil {
		t.Fatalf("SanitizeTaskFields failed: %v", err)
	}
	if got, ok := fields["list_id"].(uuid.UUID); !ok || got != id {
		t.Errorf("Expected coerced uuid, got %T %v", fields["list_id"], fields["list_id"])
	}
}

func TestSanitizeTaskFieldsRejectsBadListID(t *testing.T) {
	if _, err := services.SanitizeTaskFields(map[string]interface{}{"list_id": "nope"}); err == nil {
		t.Error("Expected error for malformed list_id")
	}
	if _, err := services.SanitizeTaskFields(map[string]interface{}{"list_id": 7}); err == nil {
		t.Error("Expected error for non-string list_id")
	}
}

func TestSanitizeTaskFieldsCoercesDueDate(t *testing.T) {
	fields, err := services.SanitizeTaskFields(map[string]interface{}{
		"due_date": "2026-09-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("SanitizeTaskFields failed: %v", err)
	}
	due, ok := fields["due_date"].(time.Time)
	if !ok {
		t.Fatalf("Expected time.Time, got %T", fields["due_date"])
	}
	if due.Year() != 2026 || due.Month() != time.September {
		t.Errorf("Unexpected parsed date: %v", due)
	}

	// Explicit null clears the column.
	fields, err = services.SanitizeTaskFields(map[string]interface{}{"due_date": nil})
	if err != nil {
		t.Fatalf("SanitizeTaskFields failed: %v", err)
	}
	if v, present := fields["due_date"]; !present || v != nil {
		t.Errorf("Expected nil due_date, got %v", fields)
	}

	if _, err := services.SanitizeTaskFields(map[string]interface{}{"due_date": "tomorrow"}); err == nil {
		t.Error("Expected error for unparseable due_date")
	}
}
