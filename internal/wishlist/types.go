package wishlist

import (
	"github.com/google/uuid"
)

// Wisher identifies a user whose wishlist contains a given property, with the
// email the price-change mailer needs.
type Wisher struct {
	UserID uuid.UUID `gorm:"column:user_id"`
	Email  string    `gorm:"column:email"`
}
