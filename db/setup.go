package db

import (
	"encoding/json"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/rbac"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Account{},
		&models.Role{},
		&models.Workspace{},
		&models.Member{},
		&models.Project{},
		&models.Task{},
		&models.Notification{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedRoles writes the role registry into the roles table. FirstOrCreate
// keeps the seed idempotent across restarts; existing rows are never touched.
func SeedRoles() error {
	for name, perms := range rbac.RolePermissions {
		encoded, err := json.Marshal(perms)
		if err != nil {
			return err
		}

		role := models.Role{Name: string(name), Permissions: encoded}

		if err := DB.Where("name = ?", string(name)).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	return nil
}
