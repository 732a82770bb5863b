package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/homefinderz-backend/internal/users"
	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
)

// PropertyDTO is the full listing aggregate returned to clients: the property
// row joined with its images, view log, price history, redacted owner
// projection, and the viewer-specific wish flag.
type PropertyDTO struct {
	ID                   uuid.UUID           `json:"id"`
	OwnerID              uuid.UUID           `json:"owner_id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Facilities           []string            `json:"facilities"`
	PropertyType         string              `json:"property_type"`
	TransactionType      string              `json:"transaction_type"`
	Price                decimal.Decimal     `json:"price"`
	Currency             string              `json:"currency"`
	Size                 float64             `json:"size"`
	Rooms                int                 `json:"rooms"`
	Address              string              `json:"address"`
	Status               string              `json:"status"`
	DocumentURL          *string             `json:"document_url,omitempty"`
	VerificationComments *string             `json:"verification_comments,omitempty"`
	IsVerified           bool                `json:"is_verified"`
	Images               []PropertyImageDTO  `json:"images"`
	Views                []PropertyViewDTO   `json:"views"`
	PricingHistory       []PricingHistoryDTO `json:"pricing_history"`
	Owner                users.OwnerDTO      `json:"owner"`
	IsWished             bool                `json:"is_wished"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// PropertyImageDTO is one gallery entry.
type PropertyImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"image_url"`
	IsPrimary bool      `json:"is_primary"`
}

// PropertyViewDTO is one row of the view log.
type PropertyViewDTO struct {
	ID       uuid.UUID  `json:"id"`
	ViewerID *uuid.UUID `json:"viewer_id,omitempty"`
	ViewedAt time.Time  `json:"viewed_at"`
}

// PricingHistoryDTO is one price point in the listing's timeline.
type PricingHistoryDTO struct {
	ID            uuid.UUID       `json:"id"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	EffectiveDate time.Time       `json:"effective_date"`
}

// NewPropertyDTO assembles the aggregate from its already-fetched parts. A nil
// owner degrades to the empty projection rather than an error; collections are
// always non-nil so clients see [] instead of null.
func NewPropertyDTO(
	property *models.Property,
	images []models.PropertyImage,
	views []models.PropertyView,
	history []models.PricingHistory,
	owner *models.User,
	isWished bool,
) *PropertyDTO {
	dto := &PropertyDTO{
		ID:                   property.ID,
		OwnerID:              property.OwnerID,
		Title:                property.Title,
		Description:          property.Description,
		Facilities:           append([]string{}, property.Facilities...),
		PropertyType:         property.PropertyType.String(),
		TransactionType:      property.TransactionType.String(),
		Price:                property.Price,
		Currency:             property.Currency,
		Size:                 property.Size,
		Rooms:                property.Rooms,
		Address:              property.Address,
		Status:               property.Status.String(),
		DocumentURL:          property.DocumentURL,
		VerificationComments: property.VerificationComments,
		IsVerified:           property.IsVerified,
		Images:               make([]PropertyImageDTO, 0, len(images)),
		Views:                make([]PropertyViewDTO, 0, len(views)),
		PricingHistory:       make([]PricingHistoryDTO, 0, len(history)),
		Owner:                users.OwnerFromModel(owner),
		IsWished:             isWished,
		CreatedAt:            property.CreatedAt,
		UpdatedAt:            property.UpdatedAt,
	}

	for _, image := range images {
		dto.Images = append(dto.Images, PropertyImageDTO{
			ID:        image.ID,
			ImageURL:  image.ImageURL,
			IsPrimary: image.IsPrimary,
		})
	}
	for _, view := range views {
		dto.Views = append(dto.Views, PropertyViewDTO{
			ID:       view.ID,
			ViewerID: view.ViewerID,
			ViewedAt: view.ViewedAt,
		})
	}
	for _, entry := range history {
		dto.PricingHistory = append(dto.PricingHistory, PricingHistoryDTO{
			ID:            entry.ID,
			Price:         entry.Price,
			Currency:      entry.Currency,
			EffectiveDate: entry.EffectiveDate,
		})
	}

	return dto
}
