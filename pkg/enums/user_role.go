package enums

import "fmt"

// UserRole maps to the user_role enum in Postgres.
type UserRole string

const (
	UserRoleBuyer         UserRole = "buyer"
	UserRolePrivateSeller UserRole = "private_seller"
	UserRoleAgency        UserRole = "agency"
	UserRoleAdmin         UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleBuyer,
	UserRolePrivateSeller,
	UserRoleAgency,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value matches a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
