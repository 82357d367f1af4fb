package identity

import (
	"testing"

	"github.com/medidesk/frontdesk/internal/config"
	"github.com/medidesk/frontdesk/internal/domain"
)

func TestStaticVerify(t *testing.T) {
	provider, err := NewStatic(config.AdminConfig{Username: "desk", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}

	t.Run("Valid", func(t *testing.T) {
		u, ok := provider.Verify("desk", "s3cret-pass")
		if !ok {
			t.Fatal("expected valid credentials to verify")
		}
		if u.Username != "desk" || u.Role != domain.RoleAdmin {
			t.Errorf("user = %+v, want desk/admin", u)
		}
	})

	t.Run("StableIdentity", func(t *testing.T) {
		a, _ := provider.Verify("desk", "s3cret-pass")
		b, _ := provider.Verify("desk", "s3cret-pass")
		if a.ID != b.ID {
			t.Error("identity id should be stable across verifications")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		if _, ok := provider.Verify("desk", "wrong"); ok {
			t.Error("wrong password verified")
		}
	})

	t.Run("WrongUsername", func(t *testing.T) {
		if _, ok := provider.Verify("admin", "s3cret-pass"); ok {
			t.Error("wrong username verified")
		}
	})
}
