package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingHistory is one append-only price point for a listing.
type PricingHistory struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID    uuid.UUID       `gorm:"column:property_id;type:uuid;not null;index:pricing_history_property_id_idx"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Currency      string          `gorm:"column:currency;not null"`
	EffectiveDate time.Time       `gorm:"column:effective_date;not null"`
}

// TableName keeps the log table singular.
func (PricingHistory) TableName() string {
	return "pricing_history"
}
