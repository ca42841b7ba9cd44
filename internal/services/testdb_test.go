package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

// newTestDB wires an isolated in-memory sqlite database into the package
// global. Roles are NOT seeded; most tests want setupTestDB instead.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}

	// A single connection keeps every session on the same in-memory store.
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Role{},
		&models.Workspace{},
		&models.Member{},
		&models.Project{},
		&models.Task{},
		&models.Notification{},
	)

	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return gdb
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := newTestDB(t)

	if err := db.SeedRoles(); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, name, email string) *models.User {
	t.Helper()

	hash := "$2a$10$notarealhashnotarealhashnotarealhash"

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return &user
}

func roleID(t *testing.T, gdb *gorm.DB, name types.RoleName) uint {
	t.Helper()

	var role models.Role

	if err := gdb.Where("name = ?", string(name)).First(&role).Error; err != nil {
		t.Fatalf("failed to load role %s: %v", name, err)
	}

	return role.ID
}

func createTestTask(t *testing.T, gdb *gorm.DB, workspaceID, projectID, createdBy uint, status string, dueDate *time.Time) *models.Task {
	t.Helper()

	task := models.Task{
		TaskCode:    utils.NewTaskCode(),
		Title:       "test task",
		ProjectID:   projectID,
		WorkspaceID: workspaceID,
		Status:      status,
		Priority:    types.TaskPriorityMedium,
		CreatedByID: createdBy,
		DueDate:     dueDate,
	}

	if err := gdb.Create(&task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	return &task
}

func count(t *testing.T, gdb *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64

	if err := gdb.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}

	return n
}
