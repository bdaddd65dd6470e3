package security

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/becas/scholarship-system/internal/core/domain"
)

const (
	DefaultBcryptCost        = 10
	DefaultPasswordMinLength = 6

	maxPasswordBytes = 72
)

// BcryptHasher implements ports.PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher returns a hasher. Out-of-range cost or a non-positive
// minLength fall back to the defaults.
func NewBcryptHasher(cost, minLength int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}
	return &BcryptHasher{cost: cost, minLength: minLength}
}

// Validate enforces the minimum length and bcrypt's 72-byte input limit.
func (h *BcryptHasher) Validate(plaintext string) error {
	if utf8.RuneCountInString(plaintext) < h.minLength {
		return domain.InvalidInput(fmt.Sprintf("password must be at least %d characters", h.minLength))
	}
	if len(plaintext) > maxPasswordBytes {
		return domain.InvalidInput("password must be at most 72 bytes")
	}
	return nil
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if err := h.Validate(plaintext); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.InvalidInput("password must be at most 72 bytes")
		}
		return "", domain.Internal("hash password", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
