package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Task belongs to exactly one list. Boolean flags default to false.
// AIEnrichment is written only by the enrichment webhook and is opaque to
// everything else. Position is stored and writable but never drives ordering;
// listings order by created_at ascending.
type Task struct {
	ID           uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	ListID       uuid.UUID  `json:"list_id" gorm:"type:uuid;not null;index"`
	Title        string     `json:"title" gorm:"not null"`
	IsCompleted  bool       `json:"is_completed" gorm:"not null;default:false"`
	IsImportant  bool       `json:"is_important" gorm:"not null;default:false"`
	IsMyDay      bool       `json:"is_my_day" gorm:"not null;default:false"`
	Notes        string     `json:"notes"`
	DueDate      *time.Time `json:"due_date"`
	Position     int        `json:"position" gorm:"not null;default:0"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	AIEnrichment JSONValue  `json:"ai_enrichment" gorm:"type:jsonb"`

	// ClientRef echoes a caller-supplied temporary id back on create so
	// optimistic clients can reconcile their local row. Never persisted.
	ClientRef string `json:"client_ref,omitempty" gorm:"-"`
}
