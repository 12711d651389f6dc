package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/pubqr/pkg/auth"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
)

// ErrInvalidPIN is returned for a wrong or missing staff PIN.
var ErrInvalidPIN = auth.ErrInvalidPIN

type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login exchanges the staff PIN for a signed token.
func (s *AuthService) Login(ctx context.Context, pin string) (string, error) {
	if err := auth.CheckPIN(strings.TrimSpace(pin)); err != nil {
		logger.WithCtx(ctx).Warn("staff login rejected")
		return "", err
	}
	token, err := auth.GenerateToken(auth.RoleStaff)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	logger.WithCtx(ctx).Info("staff login")
	return token, nil
}
