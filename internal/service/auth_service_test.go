package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/config"
	"github.com/medidesk/frontdesk/internal/identity"
	"github.com/medidesk/frontdesk/pkg/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	provider, err := identity.NewStatic(config.AdminConfig{
		Username: "admin",
		Password: "front-desk-secret",
	})
	if err != nil {
		t.Fatalf("building provider: %v", err)
	}

	jwtManager := auth.NewJWTManager(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "frontdesk-test",
	})

	return NewAuthService(provider, jwtManager, newTestAudit(), zap.NewNop())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	t.Run("ValidCredentials", func(t *testing.T) {
		pair, err := svc.Login(ctx, "admin", "front-desk-secret", "127.0.0.1")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Error("expected both tokens to be issued")
		}
		if pair.TokenType != "Bearer" {
			t.Errorf("token_type = %q, want Bearer", pair.TokenType)
		}
		if !pair.ExpiresAt.After(time.Now()) {
			t.Error("access token already expired at issuance")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		if _, err := svc.Login(ctx, "admin", "nope", "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(wrong password) = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		if _, err := svc.Login(ctx, "root", "front-desk-secret", "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(unknown user) = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	pair, err := svc.Login(ctx, "admin", "front-desk-secret", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("expected a new access token")
	}

	// The access token is not a refresh token.
	if _, err := svc.RefreshToken(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("RefreshToken(access token) = %v, want ErrInvalidCredentials", err)
	}
}
