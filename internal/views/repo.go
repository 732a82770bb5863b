package views

import (
	"context"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository appends to the property view log. The log is write-only here;
// the listing aggregation reads it back through its own batched queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a views repo bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends one view row.
func (r *Repository) Create(ctx context.Context, view *models.PropertyView) error {
	return r.db.WithContext(ctx).Create(view).Error
}
