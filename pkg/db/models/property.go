package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
)

// Property represents the canonical real-estate listing.
type Property struct {
	ID                   uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID              uuid.UUID             `gorm:"column:owner_id;type:uuid;not null;index:properties_owner_id_idx"`
	Title                string                `gorm:"column:title;not null"`
	Description          string                `gorm:"column:description;not null"`
	PropertyType         enums.PropertyType    `gorm:"column:property_type;type:property_type;not null"`
	TransactionType      enums.TransactionType `gorm:"column:transaction_type;type:transaction_type;not null"`
	Price                decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Currency             string                `gorm:"column:currency;not null;default:'USD'"`
	Size                 float64               `gorm:"column:size;type:numeric(10,2);not null;default:0"`
	Rooms                int                   `gorm:"column:rooms;not null;default:0"`
	Address              string                `gorm:"column:address;not null"`
	Facilities           pq.StringArray        `gorm:"column:facilities;type:text[];not null;default:ARRAY[]::text[]"`
	Status               enums.PropertyStatus  `gorm:"column:status;type:property_status;not null;default:'active'"`
	DocumentURL          *string               `gorm:"column:document_url"`
	VerificationComments *string               `gorm:"column:verification_comments"`
	IsVerified           bool                  `gorm:"column:is_verified;not null;default:false"`
	CreatedAt            time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
