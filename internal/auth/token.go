package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "atrium"

// CredentialBearer is the only credential type the decoder recognises.
// Any other advertised type fails with ErrInvalidCredential.
const CredentialBearer = "Bearer"

// Claims carries the verified identity claims this service consumes.
// The roles claim historically appears either as a single label or as a
// list of labels; NormalizeRoles accepts both shapes.
type Claims struct {
	Email string `json:"email"`
	Roles any    `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates externally issued bearer credentials. It performs a
// pure parse plus signature and time-claim checks; it never touches the
// user store — mapping claims to an application user is the Identity's job.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier builds a verifier for HS256 tokens signed with the shared secret.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// Decode parses and verifies a compact three-segment token of the given
// credential type.
func (v *Verifier) Decode(credType, raw string) (*Claims, error) {
	if credType != CredentialBearer {
		return nil, ErrInvalidCredential
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidCredential
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidCredential
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidCredential
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}

// GenerateToken signs a bearer credential for the given email and roles.
// Production tokens come from the external identity provider; this mirrors
// its claim layout for local development and tests (see cmd/tokenctl).
func GenerateToken(secret, issuer, email string, roles []string, ttl time.Duration) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", errors.New("auth: secret is required")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("auth: email is required")
	}
	if ttl <= 0 {
		return "", errors.New("auth: ttl must be greater than zero")
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		issuer = defaultIssuer
	}

	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		Roles: NormalizeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
