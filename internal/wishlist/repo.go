package wishlist

import (
	"context"
	"time"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a wishlist entry and ignores duplicates.
func (r *Repository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	if userID == uuid.Nil || propertyID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_entries (id, user_id, property_id, created_at) VALUES (?, ?, ?, ?) ON CONFLICT (user_id, property_id) DO NOTHING`,
			uuid.New(), userID, propertyID, time.Now().UTC()).
		Error
}

// Remove deletes the user-property entry if it exists.
func (r *Repository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.WishlistEntry{}).
		Error
}

// ListPropertyIDs returns every property the user has saved, newest first.
func (r *Repository) ListPropertyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistEntry{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("property_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// IsWished reports whether the user has favorited the property.
func (r *Repository) IsWished(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistEntry{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MembershipForUser returns, for a batch of property IDs, the subset the user
// has wished as a set. A single IN query replaces per-property existence
// checks on the list path.
func (r *Repository) MembershipForUser(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	wished := make(map[uuid.UUID]bool, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return wished, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistEntry{}).
		Where("user_id = ? AND property_id IN ?", userID, propertyIDs).
		Pluck("property_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		wished[id] = true
	}
	return wished, nil
}

// WishersForProperty returns every user who wishlisted the property joined
// with their email, for price-change notification fan-out.
func (r *Repository) WishersForProperty(ctx context.Context, propertyID uuid.UUID) ([]Wisher, error) {
	var rows []Wisher
	err := r.db.WithContext(ctx).
		Table("wishlist_entries we").
		Select("we.user_id AS user_id, u.email AS email").
		Joins("JOIN users u ON u.id = we.user_id").
		Where("we.property_id = ?", propertyID).
		Order("we.created_at ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
