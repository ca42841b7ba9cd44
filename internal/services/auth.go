package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

// RegisterUser creates a user with a local credential, their linked account,
// a default workspace, the OWNER membership, and the current-workspace
// pointer as one atomic unit. Duplicate emails fail before any write.
func RegisterUser(name, email, password string) (*models.User, *models.Workspace, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User

	err := db.DB.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil, nil, ErrBadRequest
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, nil, err
	}

	hash := string(passwordHash)

	var (
		user      models.User
		workspace models.Workspace
	)

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Name:         name,
			Email:        email,
			PasswordHash: &hash,
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		account := models.Account{
			UserID:     user.ID,
			Provider:   types.ProviderEmail,
			ProviderID: email,
		}

		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		workspace = models.Workspace{
			Name:        "My Workspace",
			Description: fmt.Sprintf("Workspace created for %s", user.Name),
			OwnerID:     user.ID,
			InviteCode:  utils.NewInviteCode(),
		}

		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}

		var ownerRole models.Role

		if err := tx.Where("name = ?", string(types.RoleOwner)).First(&ownerRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("role %s is not seeded", types.RoleOwner)
			}
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

		user.CurrentWorkspaceID = &workspace.ID
		return tx.Model(&user).Update("current_workspace_id", workspace.ID).Error
	})

	if err != nil {
		return nil, nil, err
	}

	return &user, &workspace, nil
}

// LoginOrCreateAccount is the OAuth landing path: an existing user (matched
// by email) signs straight in, otherwise the full first-login chain runs in
// one transaction, mirroring RegisterUser without a password.
func LoginOrCreateAccount(provider, providerID, displayName, email string, picture *string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&user).Error

		if err == nil {
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user = models.User{
			Name:           displayName,
			Email:          email,
			ProfilePicture: picture,
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		account := models.Account{
			UserID:     user.ID,
			Provider:   provider,
			ProviderID: providerID,
		}

		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		workspace := models.Workspace{
			Name:        "My Workspace",
			Description: fmt.Sprintf("Workspace created for %s", user.Name),
			OwnerID:     user.ID,
			InviteCode:  utils.NewInviteCode(),
		}

		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}

		var ownerRole models.Role

		if err := tx.Where("name = ?", string(types.RoleOwner)).First(&ownerRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("role %s is not seeded", types.RoleOwner)
			}
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

		user.CurrentWorkspaceID = &workspace.ID
		return tx.Model(&user).Update("current_workspace_id", workspace.ID).Error
	})

	if err != nil {
		return nil, err
	}

	return &user, nil
}
