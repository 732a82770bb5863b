package enums

import "fmt"

// PropertyStatus represents the lifecycle state of a listing.
type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusInactive PropertyStatus = "inactive"
	PropertyStatusSold     PropertyStatus = "sold"
	PropertyStatusRented   PropertyStatus = "rented"
)

var validPropertyStatuses = []PropertyStatus{
	PropertyStatusActive,
	PropertyStatusInactive,
	PropertyStatusSold,
	PropertyStatusRented,
}

// String implements fmt.Stringer.
func (s PropertyStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PropertyStatus.
func (s PropertyStatus) IsValid() bool {
	for _, candidate := range validPropertyStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePropertyStatus converts raw input into a PropertyStatus.
func ParsePropertyStatus(value string) (PropertyStatus, error) {
	for _, candidate := range validPropertyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property status %q", value)
}

// PropertyType represents the canonical kinds of listed real estate.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeOffice     PropertyType = "office"
)

var validPropertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeHouse,
	PropertyTypeVilla,
	PropertyTypeLand,
	PropertyTypeCommercial,
	PropertyTypeOffice,
}

// String implements fmt.Stringer.
func (t PropertyType) String() string {
	return string(t)
}

// IsValid reports whether the value matches a known PropertyType.
func (t PropertyType) IsValid() bool {
	for _, candidate := range validPropertyTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePropertyType converts raw input into a PropertyType.
func ParsePropertyType(value string) (PropertyType, error) {
	for _, candidate := range validPropertyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property type %q", value)
}

// TransactionType distinguishes sale listings from rentals.
type TransactionType string

const (
	TransactionTypeSale TransactionType = "sale"
	TransactionTypeRent TransactionType = "rent"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeSale,
	TransactionTypeRent,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value matches a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
