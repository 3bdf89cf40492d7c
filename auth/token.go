package auth

import (
	"chat-relay/domain/chat"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "chat-relay"

// Claims is what a session token carries about its owner.
type Claims struct {
	Username string    `json:"username"`
	Role     chat.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c Claims) IsAdmin() bool {
	return c.Role == chat.RoleAdmin
}

type TokenIssuer struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), duration: duration, now: time.Now}
}

// Generate creates a signed HS256 token for a user
func (i *TokenIssuer) Generate(username string, role chat.Role) (string, error) {
	now := i.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses the token and checks its signature, issuer and expiration
func (i *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(Issuer), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Username != "" {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
