package listings

import (
	"context"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status filter values the list path recognizes. Anything else deliberately
// falls through to an unfiltered scan, unverified listings included.
const (
	FilterActive     = "active"
	FilterSoldRented = "sold_rented"
	FilterInactive   = "inactive"
)

// Repository exposes listing persistence plus the batched child-row reads the
// aggregation path is built on.
type Repository interface {
	List(ctx context.Context, statusFilter string) ([]models.Property, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) (*models.Property, error)
	Save(ctx context.Context, property *models.Property) (*models.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	ImagesByPropertyIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.PropertyImage, error)
	ViewsByPropertyIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.PropertyView, error)
	HistoryByPropertyIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.PricingHistory, error)
	CreateImages(ctx context.Context, images []models.PropertyImage) error
	ReplaceImages(ctx context.Context, propertyID uuid.UUID, images []models.PropertyImage) error
	AppendHistory(ctx context.Context, entry *models.PricingHistory) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a listings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context, statusFilter string) ([]models.Property, error) {
	query := r.db.WithContext(ctx).Model(&models.Property{})
	switch statusFilter {
	case FilterActive:
		query = query.Where("status = ? AND is_verified = ?", enums.PropertyStatusActive, true)
	case FilterSoldRented:
		query = query.Where("status IN ? AND is_verified = ?",
			[]enums.PropertyStatus{enums.PropertyStatusSold, enums.PropertyStatusRented}, true)
	case FilterInactive:
		query = query.Where("status = ? AND is_verified = ?", enums.PropertyStatusInactive, true)
	}

	var rows []models.Property
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *repositoryImpl) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// Save writes every column of an already-loaded property and refreshes
// updated_at via the model's autoUpdateTime.
func (r *repositoryImpl) Save(ctx context.Context, property *models.Property) (*models.Property, error) {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// Delete removes the property row. Child rows go with it through the store's
// ON DELETE CASCADE constraints.
func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Property{}, "id = ?", id).Error
}

func (r *repositoryImpl) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}

func (r *repositoryImpl) ImagesByPropertyIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.PropertyImage, error) {
	out := make(map[uuid.UUID][]models.PropertyImage, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.PropertyImage
	err := r.db.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PropertyID] = append(out[row.PropertyID], row)
	}
	return out, nil
}

func (r *repositoryImpl) ViewsByPropertyIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.PropertyView, error) {
	out := make(map[uuid.UUID][]models.PropertyView, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.PropertyView
	err := r.db.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("viewed_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PropertyID] = append(out[row.PropertyID], row)
	}
	return out, nil
}

func (r *repositoryImpl) HistoryByPropertyIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.PricingHistory, error) {
	out := make(map[uuid.UUID][]models.PricingHistory, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.PricingHistory
	err := r.db.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("effective_date ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PropertyID] = append(out[row.PropertyID], row)
	}
	return out, nil
}

func (r *repositoryImpl) CreateImages(ctx context.Context, images []models.PropertyImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// ReplaceImages swaps the property's image set wholesale: delete everything,
// insert the new set. The two statements are deliberately not wrapped in a
// transaction; a failure between them leaves the property imageless, which
// callers tolerate.
func (r *repositoryImpl) ReplaceImages(ctx context.Context, propertyID uuid.UUID, images []models.PropertyImage) error {
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Delete(&models.PropertyImage{}).
		Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *repositoryImpl) AppendHistory(ctx context.Context, entry *models.PricingHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
