package rbac

import (
	"errors"

	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
)

// ErrNotMember is returned when the caller holds no membership in the
// target workspace.
var ErrNotMember = errors.New("user is not a member of the workspace")

// Checker answers whether a user may perform an action in a workspace. The
// registry is injected so it stays immutable for the process lifetime.
type Checker struct {
	DB       *gorm.DB
	Registry map[types.RoleName][]types.Permission
}

func NewChecker(db *gorm.DB) Checker {
	return Checker{DB: db, Registry: RolePermissions}
}

// Can resolves the caller's membership to its role and tests the role's
// permission set. A missing membership yields ErrNotMember.
func (c Checker) Can(userID, workspaceID uint, perm types.Permission) (bool, error) {
	var member models.Member

	err := c.DB.Preload("Role").
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotMember
		}
		return false, err
	}

	for _, p := range c.Registry[types.RoleName(member.Role.Name)] {
		if p == perm {
			return true, nil
		}
	}

	return false, nil
}
