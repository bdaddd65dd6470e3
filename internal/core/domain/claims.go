package domain

import "time"

// SessionClaims is the identity payload carried by a signed bearer token.
// It is never persisted.
type SessionClaims struct {
	SubjectID   int64
	Role        string
	DisplayName string
	Email       string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// ClaimsFor builds the claims for an identity. Times are filled in by the issuer.
func ClaimsFor(i *Identity) SessionClaims {
	return SessionClaims{
		SubjectID:   i.ID,
		Role:        i.Role,
		DisplayName: i.DisplayName,
		Email:       i.Email,
	}
}
