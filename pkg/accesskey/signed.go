package accesskey

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const signedIssuer = "portfolio-admin"

// SignedKeys is the opt-in hardened scheme: the key is an HS256 JWT with an
// explicit expiry instead of a shared code and the current minute.
type SignedKeys struct {
	Secret []byte
	TTL    time.Duration
}

func (s SignedKeys) Mint(now time.Time) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("accesskey: signing secret is empty")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    signedIssuer,
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s SignedKeys) Verify(key string, now time.Time) Reason {
	if key == "" {
		return ReasonMissingKey
	}
	if len(s.Secret) == 0 {
		return ReasonWrongCode
	}
	_, err := jwt.ParseWithClaims(key, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signedIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	switch {
	case err == nil:
		return ReasonValidKey
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ReasonExpiredKey
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ReasonWrongCode
	}
	return ReasonMalformedKey
}
