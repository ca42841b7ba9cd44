package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is seeded once at startup and immutable afterward. Permissions holds
// the JSON-encoded permission list for presentation; authorization checks go
// through the rbac registry.
type Role struct {
	gorm.Model

	Name        string         `gorm:"uniqueIndex;not null"`
	Permissions datatypes.JSON `gorm:"type:jsonb"`
}
