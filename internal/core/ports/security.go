package ports

import "github.com/becas/scholarship-system/internal/core/domain"

// PasswordHasher hashes and verifies credentials with a salted, adaptive function.
type PasswordHasher interface {
	// Validate checks plaintext against the password policy without hashing it.
	// Violations are domain.ErrInvalidInput.
	Validate(plaintext string) error
	// Hash fails with domain.ErrInvalidInput when plaintext is shorter than the policy minimum.
	Hash(plaintext string) (string, error)
	// Verify never fails; empty arguments yield false.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(claims domain.SessionClaims) (string, error)
	// Verify fails with domain.ErrUnauthorized for bad signatures, malformed or expired tokens.
	Verify(token string) (*domain.SessionClaims, error)
}
