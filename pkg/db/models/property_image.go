package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyImage stores one gallery entry for a listing.
type PropertyImage struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index:property_images_property_id_idx"`
	ImageURL   string    `gorm:"column:image_url;not null"`
	IsPrimary  bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
