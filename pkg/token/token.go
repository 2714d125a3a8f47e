// Package token issues and verifies the signed identity credential
// carried by clients. Verification is pure CPU work; nothing here
// touches storage.
package token

import (
	"errors"
	"time"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Lifetime is the fixed validity window from issuance. There is no
// refresh mechanism; clients log in again.
const Lifetime = time.Hour

var ErrInvalid = errors.New("invalid token")

// Claims is the signed payload. Joined/Updated mirror the account
// timestamps at issuance so clients can render a profile without a
// round trip.
type Claims struct {
	ID       string      `json:"id"`
	FullName string      `json:"fullName"`
	Role     entity.Role `json:"role"`
	Joined   time.Time   `json:"joined"`
	Updated  time.Time   `json:"updated"`
	jwt.RegisteredClaims
}

// Identity is the verified identity made available to downstream logic.
type Identity struct {
	ID       uuid.UUID
	Role     entity.Role
	FullName string
	IssuedAt time.Time
}

// Issue signs a credential for user valid for Lifetime from now.
func Issue(user *entity.User, secret string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(Lifetime)

	claims := Claims{
		ID:       user.ID.String(),
		FullName: user.FullName(),
		Role:     user.Role,
		Joined:   user.CreatedAt,
		Updated:  user.UpdatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a credential string. Any failure (bad
// signature, malformed payload, expiry, wrong algorithm, unknown role)
// is reported as ErrInvalid without detail.
func Verify(tokenStr, secret string) (*Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalid
	}

	if !entity.ValidRole(claims.Role) {
		return nil, ErrInvalid
	}

	identity := &Identity{
		ID:       id,
		Role:     claims.Role,
		FullName: claims.FullName,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}

	return identity, nil
}
