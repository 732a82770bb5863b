package users

import (
	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
)

// OwnerDTO is the redacted owner projection embedded in listing responses.
// It deliberately omits credentials, verification state, and quota fields.
type OwnerDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// OwnerFromModel projects a user row into the owner shape. A nil user yields
// the zero DTO so listings whose owner row has disappeared still render.
func OwnerFromModel(u *models.User) OwnerDTO {
	if u == nil {
		return OwnerDTO{}
	}

	return OwnerDTO{
		ID:       u.ID.String(),
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role.String(),
	}
}
