package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medidesk/frontdesk/internal/config"
	"github.com/medidesk/frontdesk/internal/domain"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "frontdesk-test",
	}
}

func testClaims() *domain.Claims {
	return &domain.Claims{
		UserID:   uuid.New(),
		Username: "admin",
		Role:     domain.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())
	in := testClaims()

	pair, err := m.GenerateTokenPair(in)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	out, err := m.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if out.UserID != in.UserID || out.Username != in.Username || out.Role != in.Role {
		t.Errorf("claims round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestTokenTypeMismatch(t *testing.T) {
	m := NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("ValidateAccessToken(refresh token) = %v, want ErrTokenTypeMismatch", err)
	}
	if _, err := m.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("ValidateRefreshToken(access token) = %v, want ErrTokenTypeMismatch", err)
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	m := NewJWTManager(cfg)

	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ValidateAccessToken(expired) = %v, want ErrTokenExpired", err)
	}
}

func TestWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := testConfig()
	other.Secret = "fedcba9876543210fedcba9876543210"
	if _, err := NewJWTManager(other).ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("validation with wrong secret = %v, want ErrTokenInvalid", err)
	}
}

func TestWrongIssuer(t *testing.T) {
	m := NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := testConfig()
	other.Issuer = "someone-else"
	if _, err := NewJWTManager(other).ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("validation with wrong issuer = %v, want ErrTokenInvalid", err)
	}
}

func TestGarbageToken(t *testing.T) {
	m := NewJWTManager(testConfig())
	if _, err := m.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ValidateAccessToken(garbage) = %v, want ErrTokenInvalid", err)
	}
}
