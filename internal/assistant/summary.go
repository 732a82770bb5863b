package assistant

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
)

// BuildListingSummary renders the plain-text digest of a verified listing
// that gets planted into assistant conversations as hidden context.
func BuildListingSummary(property *models.Property, imageCount int, history []models.PricingHistory) string {
	facilities := "none"
	if len(property.Facilities) > 0 {
		facilities = strings.Join(property.Facilities, ", ")
	}

	var b strings.Builder
	b.WriteString("Verified property listing:\n")
	fmt.Fprintf(&b, "Title: %s\n", property.Title)
	fmt.Fprintf(&b, "Type: %s\n", property.PropertyType)
	fmt.Fprintf(&b, "Description: %s\n", property.Description)
	fmt.Fprintf(&b, "Transaction: %s\n", property.TransactionType)
	fmt.Fprintf(&b, "Price: %s %s\n", property.Price.StringFixed(2), property.Currency)
	fmt.Fprintf(&b, "Size: %.2f m2\n", property.Size)
	fmt.Fprintf(&b, "Rooms: %d\n", property.Rooms)
	fmt.Fprintf(&b, "Address: %s\n", property.Address)
	fmt.Fprintf(&b, "Status: %s\n", property.Status)
	fmt.Fprintf(&b, "Verified: %t\n", property.IsVerified)
	fmt.Fprintf(&b, "Images: %d\n", imageCount)
	fmt.Fprintf(&b, "Facilities: %s\n", facilities)
	b.WriteString("Price history:")
	if len(history) == 0 {
		b.WriteString(" none")
		return b.String()
	}
	for _, entry := range history {
		fmt.Fprintf(&b, "\n- %s: %s %s", entry.EffectiveDate.Format("2006-01-02"), entry.Price.StringFixed(2), entry.Currency)
	}
	return b.String()
}
