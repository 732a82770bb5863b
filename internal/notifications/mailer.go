package notifications

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceChange is the payload of a price-change notice: which listing moved
// and between which prices.
type PriceChange struct {
	PropertyName string
	Address      string
	OldPrice     decimal.Decimal
	NewPrice     decimal.Decimal
	Currency     string
}

// Mailer delivers price-change notices. Implementations must be safe for
// concurrent use; the dispatcher fans out across goroutines.
type Mailer interface {
	SendPriceChange(ctx context.Context, recipient string, notice PriceChange) error
}
