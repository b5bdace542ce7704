package services

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

// Writable task columns. The original surface accepted arbitrary bodies;
// here id, created_at and ai_enrichment are deliberately excluded so callers
// cannot forge identities, reorder history, or write the enrichment field
// outside the webhook path.
var writableTaskFields = map[string]bool{
	"list_id":      true,
	"title":        true,
	"notes":        true,
	"due_date":     true,
	"is_completed": true,
	"is_important": true,
	"is_my_day":    true,
	"position":     true,
}

// SanitizeTaskFields filters a raw request body down to writable columns and
// coerces string ids and timestamps into their column types.
func SanitizeTaskFields(body map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(body))
	for key, value := range body {
		if !writableTaskFields[key] {
			continue
		}

		switch key {
		case "list_id":
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("list_id must be a string")
			}
			id, err := uuid.FromString(str)
			if err != nil {
				return nil, fmt.Errorf("invalid list_id: %w", err)
			}
			fields[key] = id
		case "due_date":
			if value == nil {
				fields[key] = nil
				continue
			}
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("due_date must be an RFC 3339 string or null")
			}
			t, err := time.Parse(time.RFC3339, str)
			if err != nil {
				return nil, fmt.Errorf("invalid due_date: %w", err)
			}
			fields[key] = t
		default:
			fields[key] = value
		}
	}
	return fields, nil
}
