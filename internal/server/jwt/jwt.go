// Package jwt issues and validates access and refresh tokens.
//
// Access and refresh tokens are signed with two independent secrets, so a
// compromised refresh secret cannot be used to forge access tokens and vice
// versa. Tokens are not persisted: validity is determined solely by signature
// and expiry.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents token claims: the user id is the sole custom claim.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Config содержит секреты и времена жизни токенов
type Config struct {
	AccessSecret    []byte
	RefreshSecret   []byte
	AccessTokenTTL  time.Duration // 15 минут
	RefreshTokenTTL time.Duration // 7 дней
}

// Service provides token generation and validation
type Service struct {
	cfg Config
}

// NewService creates a new token service
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// IssueAccess creates a short-lived access token bound to the user id
func (s *Service) IssueAccess(userID string) (string, error) {
	return sign(s.cfg.AccessSecret, userID, s.cfg.AccessTokenTTL)
}

// IssueRefresh creates a long-lived refresh token bound to the user id
func (s *Service) IssueRefresh(userID string) (string, error) {
	return sign(s.cfg.RefreshSecret, userID, s.cfg.RefreshTokenTTL)
}

// ParseAccess validates an access token against the access secret
func (s *Service) ParseAccess(token string) (*Claims, error) {
	return parse(s.cfg.AccessSecret, token)
}

// ParseRefresh validates a refresh token against the refresh secret
func (s *Service) ParseRefresh(token string) (*Claims, error) {
	return parse(s.cfg.RefreshSecret, token)
}

// RefreshTokenTTL returns the configured refresh token lifetime.
// Handlers use it for the cookie max age.
func (s *Service) RefreshTokenTTL() time.Duration {
	return s.cfg.RefreshTokenTTL
}

func sign(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "shopkeeper",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func parse(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC, чтобы исключить подмену алгоритма
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
