package handler

import "github.com/becas/scholarship-system/internal/core/domain"

// registerRequest is the body of POST /auth/register. GeneratePassword selects
// the generated-password variant, which needs Age instead of Password. Role
// admin is only honoured when an authenticated admin makes the call.
type registerRequest struct {
	DisplayName      string `json:"display_name"      validate:"required,max=100"`
	Surname          string `json:"surname"           validate:"omitempty,max=100"`
	Email            string `json:"email"             validate:"omitempty,email,max=254"`
	Password         string `json:"password"          validate:"required_unless=GeneratePassword true,omitempty,min=6"`
	Role             string `json:"role"              validate:"omitempty,oneof=estudiante admin"`
	Age              int    `json:"age"               validate:"required_if=GeneratePassword true,omitempty,gt=0"`
	GeneratePassword bool   `json:"generate_password"`
}

func (r registerRequest) toDomain() domain.RegistrationRequest {
	profile := domain.RegistrationProfile{
		DisplayName: r.DisplayName,
		Surname:     r.Surname,
		Email:       r.Email,
		Role:        r.Role,
	}
	if r.GeneratePassword {
		return domain.GeneratedPassword{RegistrationProfile: profile, Age: r.Age}
	}
	return domain.ExplicitPassword{RegistrationProfile: profile, Password: r.Password}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

type authResponse struct {
	AccessToken       string            `json:"access_token"`
	User              domain.PublicUser `json:"user"`
	GeneratedPassword string            `json:"generated_password,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
