package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
)

// JoinWorkspaceByInviteCode adds the user to the workspace behind the invite
// code with the MEMBER role. Joining a workspace twice is a conflict, backed
// by the composite unique index on memberships.
func JoinWorkspaceByInviteCode(userID uint, inviteCode string) (*models.Workspace, error) {
	var workspace models.Workspace

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("invite_code = ?", inviteCode).First(&workspace).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Member

		err = tx.Where("user_id = ? AND workspace_id = ?", userID, workspace.ID).First(&existing).Error

		if err == nil {
			return ErrAlreadyMember
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var memberRole models.Role

		if err := tx.Where("name = ?", string(types.RoleMember)).First(&memberRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("role %s is not seeded", types.RoleMember)
			}
			return err
		}

		member := models.Member{
			UserID:      userID,
			WorkspaceID: workspace.ID,
			RoleID:      memberRole.ID,
			JoinedAt:    time.Now(),
		}

		return tx.Create(&member).Error
	})

	if err != nil {
		return nil, err
	}

	return &workspace, nil
}
