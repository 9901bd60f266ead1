package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"livepoll/config"
	"livepoll/internal/domain/user"
	livepoll_errors "livepoll/pkg/errors"
)

// AuthService mints access tokens handed out at registration. The realtime
// boundary uses them only to tag a connection with its user id; there is no
// authorization layer behind them.
type AuthService struct {
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type AccessClaims struct {
	UserID string `json:"sub"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) IssueAccessToken(u user.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		Name:   u.DisplayName,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, livepoll_errors.ErrInvalidInput
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, livepoll_errors.ErrInvalidInput
	}
	return claims, nil
}
