package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/becas/scholarship-system/internal/core/domain"
)

const DefaultTokenTTL = time.Hour

// tokenClaims is the JWT wire format. The subject id travels as the
// decimal string in "sub".
type tokenClaims struct {
	Role        string `json:"role"`
	DisplayName string `json:"nombre"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer with HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests to move past expiry.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	i.now = now
	return i
}

func (i *JWTIssuer) Issue(claims domain.SessionClaims) (string, error) {
	issuedAt := i.now().UTC().Truncate(time.Second)
	tc := tokenClaims{
		Role:        claims.Role,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.SubjectID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(i.secret)
	if err != nil {
		return "", domain.Internal("sign token", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Verify(token string) (*domain.SessionClaims, error) {
	if token == "" {
		return nil, domain.Unauthorized("missing token")
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &domain.Error{Kind: domain.ErrUnauthorized, Message: "token expired", Err: err}
		}
		return nil, &domain.Error{Kind: domain.ErrUnauthorized, Message: "invalid token", Err: err}
	}

	// A non-numeric subject decodes as zero and is rejected by the caller.
	subject, _ := strconv.ParseInt(tc.Subject, 10, 64)

	out := &domain.SessionClaims{
		SubjectID:   subject,
		Role:        tc.Role,
		DisplayName: tc.DisplayName,
		Email:       tc.Email,
	}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	return out, nil
}
