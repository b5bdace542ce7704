package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// List is a named collection of tasks owned by a user identifier. The
// identifier is a free-form string, not a verified identity.
type List struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Title          string    `json:"title" gorm:"not null"`
	UserIdentifier string    `json:"user_identifier"`
	IsDefault      bool      `json:"is_default" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
}
