package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemPrompt is a reusable assistant instruction block.
type SystemPrompt struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
