package domain

// RegistrationRequest is either ExplicitPassword or GeneratedPassword.
type RegistrationRequest interface {
	Profile() RegistrationProfile
	isRegistration()
}

// RegistrationProfile holds the fields shared by both registration variants.
type RegistrationProfile struct {
	DisplayName string
	Surname     string
	Email       string
	Role        string
}

// ExplicitPassword registers an identity with a caller-chosen password.
type ExplicitPassword struct {
	RegistrationProfile
	Password string
}

// GeneratedPassword registers an identity whose password is derived from the
// profile and returned once to the caller.
type GeneratedPassword struct {
	RegistrationProfile
	Age int
}

func (r ExplicitPassword) Profile() RegistrationProfile  { return r.RegistrationProfile }
func (r GeneratedPassword) Profile() RegistrationProfile { return r.RegistrationProfile }

func (ExplicitPassword) isRegistration()  {}
func (GeneratedPassword) isRegistration() {}
