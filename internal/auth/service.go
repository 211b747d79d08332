package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service issues and validates marketplace access tokens. This is demo auth:
// any name may log in under any role, and identity lives only in the token.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewService(secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// IssueToken creates a signed JWT for the given name and role.
func (s *Service) IssueToken(name string, role Role) (string, *User, error) {
	if name == "" {
		return "", nil, fmt.Errorf("name is required")
	}
	if !ValidRole(role) {
		return "", nil, fmt.Errorf("invalid role: %s", role)
	}

	user := &User{
		ID:   uuid.New(),
		Name: name,
		Role: role,
	}

	now := time.Now()
	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)))

	return signed, user, nil
}

// ValidateToken parses a signed token and returns the user it identifies.
func (s *Service) ValidateToken(tokenString string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return &User{ID: id, Name: claims.Name, Role: claims.Role}, nil
}
