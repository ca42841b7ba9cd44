package models

import "gorm.io/gorm"

type Workspace struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	OwnerID     uint   `gorm:"not null;index"`
	InviteCode  string `gorm:"uniqueIndex;not null"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID"`
	Members  []Member  `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Projects []Project `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks    []Task    `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
