// Package auth issues and verifies the bearer tokens that authorize requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is reported when a request carries no bearer credential.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken covers bad signature, malformed structure and expiry.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims includes the registered claims plus the user id the token was
// issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// Issuer signs and verifies HS256 tokens. Possession of a valid, unexpired
// token authorizes the holder as the embedded user id; there is no
// revocation mechanism.
type Issuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

func NewIssuer(secretKey []byte, validity time.Duration) *Issuer {
	return &Issuer{secretKey: secretKey, validity: validity, now: time.Now}
}

// Issue produces a signed token embedding userID, expiring after the
// configured validity duration.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, structure and expiry, and returns the embedded
// user id. All failures map to ErrInvalidToken; callers that distinguish an
// absent credential report ErrMissingToken themselves.
func (i *Issuer) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secretKey, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return 0, ErrInvalidToken
	}

	if !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}
