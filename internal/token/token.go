package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every validation failure: bad signature,
// malformed payload, missing claims, expiry elapsed. Callers must not be able
// to tell the reasons apart.
var ErrInvalidToken = errors.New("invalid token")

const adminIDClaim = "admin_id"

// Issuer creates and validates HS256-signed admin bearer tokens. The signing
// secret is injected at construction and never read from the environment here.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token carrying the admin id and an absolute expiry
// of ttl from now.
func (i *Issuer) Issue(adminID string) (string, error) {
	claims := jwt.MapClaims{
		adminIDClaim: adminID,
		"exp":        i.now().Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate verifies signature and expiry and returns the embedded admin id.
// A token is invalid at exactly its expiry instant.
func (i *Issuer) Validate(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	adminID, ok := claims[adminIDClaim].(string)
	if !ok || adminID == "" {
		return "", ErrInvalidToken
	}

	return adminID, nil
}
