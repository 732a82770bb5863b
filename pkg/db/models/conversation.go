package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one assistant chat thread owned by a user.
type Conversation struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:conversations_user_id_idx"`
	SystemPromptID *uuid.UUID `gorm:"column:system_prompt_id;type:uuid"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
