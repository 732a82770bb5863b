package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyView is one row in the append-only listing view log. Rows are
// written by the view worker, never by the listing service.
type PropertyView struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID uuid.UUID  `gorm:"column:property_id;type:uuid;not null;index:property_views_property_id_idx"`
	ViewerID   *uuid.UUID `gorm:"column:viewer_id;type:uuid"`
	ViewedAt   time.Time  `gorm:"column:viewed_at;autoCreateTime"`
}
