package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the data carried inside a session JWT. The core only
// ever reads the name and email back out of it.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates session tokens. The signing key is
// injected so it can come from the environment or a secret manager.
type TokenIssuer struct {
	key      []byte
	duration time.Duration
}

func NewTokenIssuer(key []byte, duration time.Duration) TokenIssuer {
	return TokenIssuer{key: key, duration: duration}
}

// Issue creates a signed session token for a signed-in user.
func (i TokenIssuer) Issue(name, email string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "vitamed",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.key)
}

// Validate parses a token and checks its signature and expiration.
func (i TokenIssuer) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
