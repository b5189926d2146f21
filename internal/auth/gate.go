package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toybox/storefront/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredential = errors.New("bad credential")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
)

var _ port.AdminGate = (*Gate)(nil)

const adminRole = "admin"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Gate is the admin capability boundary: it checks the supplied secret
// against a bcrypt hash and hands out short-lived HS256 session tokens.
type Gate struct {
	secretHash []byte
	tokenKey   []byte
	sessionTTL time.Duration
}

func NewGate(secretHash, tokenSecret string, sessionTTL time.Duration) Gate {
	return Gate{
		secretHash: []byte(secretHash),
		tokenKey:   []byte(tokenSecret),
		sessionTTL: sessionTTL,
	}
}

// IssueToken exchanges a valid admin secret for a session token.
func (g Gate) IssueToken(secret string) (string, error) {
	err := bcrypt.CompareHashAndPassword(g.secretHash, []byte(secret))
	if err != nil {
		return "", ErrBadCredential
	}

	now := time.Now()
	claims := Claims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminRole,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.tokenKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// VerifyToken checks signature, expiry and the admin role claim.
func (g Gate) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return g.tokenKey, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != adminRole {
		return ErrInvalidToken
	}
	return nil
}
