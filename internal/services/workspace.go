package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

type WorkspaceAnalytics struct {
	TotalTasks     int64 `json:"total_tasks"`
	OverdueTasks   int64 `json:"overdue_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
}

// CreateWorkspace creates a workspace owned by ownerID, an OWNER membership
// for them, and repoints their current workspace. The three writes commit or
// roll back together.
func CreateWorkspace(ownerID uint, name, description string) (*models.Workspace, error) {
	var workspace models.Workspace

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var ownerRole models.Role

		if err := tx.Where("name = ?", string(types.RoleOwner)).First(&ownerRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Seeding precondition, not a caller mistake.
				return fmt.Errorf("role %s is not seeded", types.RoleOwner)
			}
			return err
		}

		workspace = models.Workspace{
			Name:        name,
			Description: description,
			OwnerID:     user.ID,
			InviteCode:  utils.NewInviteCode(),
		}

		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}

		member := models.Member{
			UserID:      user.ID,
			WorkspaceID: workspace.ID,
			RoleID:      ownerRole.ID,
			JoinedAt:    time.Now(),
		}

		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		return tx.Model(&user).Update("current_workspace_id", workspace.ID).Error
	})

	if err != nil {
		return nil, err
	}

	return &workspace, nil
}

// ListWorkspacesForUser returns every workspace reachable through the user's
// memberships, in store-default order.
func ListWorkspacesForUser(userID uint) ([]models.Workspace, error) {
	var workspaces []models.Workspace

	err := db.DB.
		Joins("JOIN members ON members.workspace_id = workspaces.id").
		Where("members.user_id = ?", userID).
		Find(&workspaces).Error

	if err != nil {
		return nil, err
	}

	return workspaces, nil
}

// GetWorkspaceDetail returns the workspace and its membership list with role
// detail resolved.
func GetWorkspaceDetail(workspaceID uint) (*models.Workspace, []models.Member, error) {
	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var members []models.Member

	if err := db.DB.Preload("Role").Where("workspace_id = ?", workspaceID).Find(&members).Error; err != nil {
		return nil, nil, err
	}

	return &workspace, members, nil
}

// ListMembers returns the workspace memberships with user display fields and
// role names, plus the full role registry (id and name only) for assignment.
func ListMembers(workspaceID uint) ([]models.Member, []models.Role, error) {
	var members []models.Member

	err := db.DB.
		Preload("User").
		Preload("Role").
		Where("workspace_id = ?", workspaceID).
		Find(&members).Error

	if err != nil {
		return nil, nil, err
	}

	var roles []models.Role

	if err := db.DB.Select("id", "name").Find(&roles).Error; err != nil {
		return nil, nil, err
	}

	return members, roles, nil
}

// ComputeAnalytics aggregates task counters for the workspace. Point-in-time
// snapshot, no transaction; staleness under concurrent writes is acceptable.
func ComputeAnalytics(workspaceID uint) (*WorkspaceAnalytics, error) {
	now := time.Now()

	var analytics WorkspaceAnalytics

	err := db.DB.Model(&models.Task{}).
		Where("workspace_id = ?", workspaceID).
		Count(&analytics.TotalTasks).Error

	if err != nil {
		return nil, err
	}

	// Overdue excludes DONE tasks even when the due date is past.
	err = db.DB.Model(&models.Task{}).
		Where("workspace_id = ? AND due_date < ? AND status <> ?", workspaceID, now, types.TaskStatusDone).
		Count(&analytics.OverdueTasks).Error

	if err != nil {
		return nil, err
	}

	err = db.DB.Model(&models.Task{}).
		Where("workspace_id = ? AND status = ?", workspaceID, types.TaskStatusDone).
		Count(&analytics.CompletedTasks).Error

	if err != nil {
		return nil, err
	}

	return &analytics, nil
}

// ChangeMemberRole reassigns the target user's role within the workspace.
// Last write wins; there is no optimistic versioning on memberships.
func ChangeMemberRole(workspaceID, targetUserID, roleID uint) (*models.Member, error) {
	var role models.Role

	if err := db.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var member models.Member

	err := db.DB.
		Where("user_id = ? AND workspace_id = ?", targetUserID, workspaceID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotInWorkspace
		}
		return nil, err
	}

	if err := db.DB.Model(&member).Update("role_id", role.ID).Error; err != nil {
		return nil, err
	}

	member.RoleID = role.ID
	member.Role = role

	return &member, nil
}

// UpdateWorkspace applies a partial update: empty fields keep their current
// values, so a description cannot be cleared through this operation.
func UpdateWorkspace(workspaceID uint, name, description string) (*models.Workspace, error) {
	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != "" {
		workspace.Name = name
	}

	if description != "" {
		workspace.Description = description
	}

	if err := db.DB.Save(&workspace).Error; err != nil {
		return nil, err
	}

	return &workspace, nil
}

// DeleteWorkspace tears down a workspace and everything scoped to it. Only
// the exact owner may delete, regardless of assigned permissions. Projects,
// tasks and memberships go first, then the requesting user's current
// workspace is repaired if it pointed here, then the workspace row itself.
// Returns the user's (possibly new) current workspace id.
func DeleteWorkspace(workspaceID, userID uint) (*uint, error) {
	var currentWorkspaceID *uint

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var workspace models.Workspace

		if err := tx.First(&workspace, workspaceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if workspace.OwnerID != userID {
			return ErrBadRequest
		}

		var user models.User

		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Unscoped().Where("workspace_id = ?", workspace.ID).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("workspace_id = ?", workspace.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("workspace_id = ?", workspace.ID).Delete(&models.Member{}).Error; err != nil {
			return err
		}

		if user.CurrentWorkspaceID != nil && *user.CurrentWorkspaceID == workspace.ID {
			// This workspace's memberships are already gone, so the first
			// remaining membership belongs to another workspace.
			var next models.Member

			err := tx.Where("user_id = ?", userID).First(&next).Error

			switch {
			case err == nil:
				user.CurrentWorkspaceID = &next.WorkspaceID
			case errors.Is(err, gorm.ErrRecordNotFound):
				user.CurrentWorkspaceID = nil
			default:
				return err
			}

			if err := tx.Model(&user).Update("current_workspace_id", user.CurrentWorkspaceID).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Delete(&workspace).Error; err != nil {
			return err
		}

		currentWorkspaceID = user.CurrentWorkspaceID
		return nil
	})

	if err != nil {
		return nil, err
	}

	return currentWorkspaceID, nil
}
