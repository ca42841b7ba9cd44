package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewInviteCode returns the shareable code used to join a workspace.
func NewInviteCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewTaskCode returns a short human-readable task identifier.
func NewTaskCode() string {
	return "task-" + uuid.NewString()[:8]
}
