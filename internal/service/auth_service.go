package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/domain"
	"github.com/medidesk/frontdesk/internal/identity"
	"github.com/medidesk/frontdesk/pkg/auth"
)

type AuthService struct {
	provider   identity.Provider
	jwtManager *auth.JWTManager
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewAuthService(provider identity.Provider, jwtManager *auth.JWTManager, auditSvc *AuditService, log *zap.Logger) *AuthService {
	return &AuthService{provider: provider, jwtManager: jwtManager, auditSvc: auditSvc, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string, ip string) (*domain.TokenPair, error) {
	user, ok := s.provider.Verify(username, password)
	if !ok {
		s.log.Warn("failed login attempt",
			zap.String("username", username),
			zap.String("ip", ip),
		)
		return nil, ErrInvalidCredentials
	}

	claims := &domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	pair, err := s.jwtManager.GenerateTokenPair(claims)
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:  user.Username,
		UserRole:  string(user.Role),
		Action:    "login",
		IPAddress: ip,
	})

	s.log.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("ip", ip),
	)

	return pair, nil
}

// RefreshToken issues a new token pair given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(claims)
}
