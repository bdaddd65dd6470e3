package domain

import "time"

const (
	RoleStudent = "estudiante"
	RoleAdmin   = "admin"
)

// DefaultRole is assigned when a registration does not name one.
const DefaultRole = RoleStudent

// Identity models a stored user record used for authentication.
type Identity struct {
	ID           int64
	DisplayName  string
	Surname      string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of an Identity that may leave the service.
type PublicUser struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Surname     string `json:"surname,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
}

// Public strips credentials from the identity.
func (i *Identity) Public() PublicUser {
	return PublicUser{
		ID:          i.ID,
		DisplayName: i.DisplayName,
		Surname:     i.Surname,
		Email:       i.Email,
		Role:        i.Role,
	}
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}
