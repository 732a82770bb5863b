package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email             string         `gorm:"type:text;not null;uniqueIndex"`
	Username          string         `gorm:"column:username;not null;uniqueIndex"`
	Role              enums.UserRole `gorm:"column:role;type:user_role;not null"`
	ListingLimit      *int           `gorm:"column:listing_limit"`
	IsEmailVerified   bool           `gorm:"column:is_email_verified;not null;default:false"`
	PaypalCredentials *string        `gorm:"column:paypal_credentials"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
