// README: JWT access/refresh token signing and verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tripmaster/internal/types"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies the access/refresh token pair. Separate secrets
// keep a leaked access secret from minting refresh tokens.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokens(accessSecret, refreshSecret string) *Tokens {
	return &Tokens{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (t *Tokens) SignAccess(userID types.ID, email string) (string, error) {
	return sign(t.accessSecret, userID, email, AccessTokenTTL)
}

func (t *Tokens) SignRefresh(userID types.ID, email string) (string, error) {
	return sign(t.refreshSecret, userID, email, RefreshTokenTTL)
}

func (t *Tokens) VerifyAccess(token string) (*Claims, error) {
	return verify(t.accessSecret, token)
}

func (t *Tokens) VerifyRefresh(token string) (*Claims, error) {
	return verify(t.refreshSecret, token)
}

func sign(secret []byte, userID types.ID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: string(userID),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verify(secret []byte, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
