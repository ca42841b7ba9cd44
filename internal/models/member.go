package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is the join entity binding a User to a Workspace with a Role.
type Member struct {
	gorm.Model

	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_workspace"`
	WorkspaceID uint      `gorm:"not null;uniqueIndex:idx_user_workspace"`
	RoleID      uint      `gorm:"not null;index"`
	JoinedAt    time.Time `gorm:"not null"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Workspace Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Role      Role      `gorm:"foreignKey:RoleID"`
}
