package service

import (
	"errors"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Caller carries the request identity for audit trails.
type Caller struct {
	Username  string
	Role      string
	IP        string
	RequestID string
}

type AuditEntry struct {
	Username     string
	UserRole     string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	RequestID    string
	Changes      string
}
