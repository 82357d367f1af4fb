package identity

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medidesk/frontdesk/internal/config"
	"github.com/medidesk/frontdesk/internal/domain"
)

// Provider resolves a credential pair to an identity. The auth service only
// sees this interface; where the credentials live is a deployment concern.
type Provider interface {
	Verify(username, password string) (*domain.User, bool)
}

// Static is a Provider backed by the single configured operator credential.
// The password is hashed at construction so verification never compares
// plaintext.
type Static struct {
	user domain.User
	hash []byte
}

func NewStatic(cfg config.AdminConfig) (*Static, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}

	return &Static{
		user: domain.User{
			ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("frontdesk:"+cfg.Username)),
			Username: cfg.Username,
			Role:     domain.RoleAdmin,
		},
		hash: hash,
	}, nil
}

func (s *Static) Verify(username, password string) (*domain.User, bool) {
	if username != s.user.Username {
		// Burn a bcrypt comparison anyway so response time does not reveal
		// whether the username was right.
		_ = bcrypt.CompareHashAndPassword(s.hash, []byte(password))
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return nil, false
	}
	u := s.user
	return &u, true
}
