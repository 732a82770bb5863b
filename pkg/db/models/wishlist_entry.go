package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry links a user to a saved listing.
type WishlistEntry struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:wishlist_entries_user_id_idx;uniqueIndex:wishlist_entries_user_property_key"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index:wishlist_entries_property_id_idx;uniqueIndex:wishlist_entries_user_property_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
