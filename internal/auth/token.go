package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leadforge/leadforge/internal/shared"
)

// Claims carries the actor identity inside an access token.
type Claims struct {
	CompanyID int64  `json:"cid,omitempty"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed access token for the user.
func (t *TokenIssuer) Issue(user User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		CompanyID: user.CompanyID,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a signed token and returns the actor it identifies. Expired,
// malformed, and wrongly signed tokens all map to ErrUnauthenticated.
func (t *TokenIssuer) Verify(raw string) (shared.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return shared.Actor{}, shared.ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return shared.Actor{}, shared.ErrUnauthenticated
	}
	return shared.Actor{UserID: userID, CompanyID: claims.CompanyID, Email: claims.Email}, nil
}
